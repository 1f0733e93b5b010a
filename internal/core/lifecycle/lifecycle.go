// Package lifecycle owns the engine's subsystem instances.
//
// A Registry holds at most one live instance per Go type. Instances are
// created only by StartUp and destroyed only by ShutDown (or ShutDownAll);
// accessing a type outside that window is a fatal assertion. The registry is
// an explicit value handed to whoever needs it, so start order and teardown
// order are visible at the call site rather than hidden in package globals.
//
// Like the rest of the core, a Registry is owned by the main loop goroutine
// and performs no locking.
package lifecycle

import (
	"fmt"
	"reflect"

	"github.com/IlyaYakubovichh/Gojo/internal/core/assert"
	"go.uber.org/zap"
)

const category = "Lifecycle"

// Shutdowner is implemented by subsystems that release resources when they
// are shut down.
type Shutdowner interface {
	Shutdown()
}

type slot struct {
	name     string
	instance any
}

// Registry tracks one live instance per subsystem type.
type Registry struct {
	slots map[reflect.Type]*slot
	order []reflect.Type // start order
	log   *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		slots: make(map[reflect.Type]*slot, 8),
		order: make([]reflect.Type, 0, 8),
		log:   log,
	}
}

// StartUp constructs the single instance of T with build and records it.
// Starting a type that is already live is a fatal assertion. An error from
// build is returned wrapped and leaves T absent.
func StartUp[T any](r *Registry, build func() (*T, error)) (*T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := r.slots[t]; ok {
		assert.Fail(r.log, category, fmt.Sprintf("only one instance of %s may exist", s.name))
		return s.instance.(*T), nil
	}
	assert.That(r.log, build != nil, category, "StartUp needs a constructor")

	inst, err := build()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", t, err)
	}
	assert.That(r.log, inst != nil, category, fmt.Sprintf("constructor for %s returned nil", t))
	if inst == nil {
		return nil, fmt.Errorf("start %s: nil instance", t)
	}

	r.slots[t] = &slot{name: t.String(), instance: inst}
	r.order = append(r.order, t)
	r.log.Debug("subsystem started", zap.String("subsystem", t.String()))
	return inst, nil
}

// ShutDown destroys the live instance of T, calling its Shutdown hook first
// when it has one. Shutting down an absent type is a fatal assertion.
func ShutDown[T any](r *Registry) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if _, ok := r.slots[t]; !ok {
		assert.Fail(r.log, category, fmt.Sprintf("%s is not running (never started or already shut down)", t))
		return
	}
	r.destroy(t)
}

// GetInstance returns the live instance of T. Access before StartUp or after
// ShutDown is a fatal assertion.
func GetInstance[T any](r *Registry) *T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	s, ok := r.slots[t]
	if !ok {
		assert.Fail(r.log, category, fmt.Sprintf("%s accessed before StartUp() or after ShutDown()", t))
		return nil
	}
	return s.instance.(*T)
}

// Lookup is the non-failing form of GetInstance.
func Lookup[T any](r *Registry) (*T, bool) {
	s, ok := r.slots[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return s.instance.(*T), true
}

// IsInitialized reports whether T is live.
func IsInitialized[T any](r *Registry) bool {
	_, ok := r.slots[reflect.TypeOf((*T)(nil)).Elem()]
	return ok
}

// ShutDownAll destroys every live instance in reverse start order.
func (r *Registry) ShutDownAll() {
	for len(r.order) > 0 {
		r.destroy(r.order[len(r.order)-1])
	}
}

// Names returns the live subsystem names in start order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.order))
	for _, t := range r.order {
		names = append(names, r.slots[t].name)
	}
	return names
}

// Len returns the number of live subsystems.
func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) destroy(t reflect.Type) {
	s := r.slots[t]
	if sd, ok := s.instance.(Shutdowner); ok {
		sd.Shutdown()
	}
	delete(r.slots, t)
	for i, o := range r.order {
		if o == t {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Info("ShutDown complete", zap.String("subsystem", s.name))
}
