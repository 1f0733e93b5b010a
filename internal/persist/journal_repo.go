package persist

import (
	"context"
	"fmt"
	"time"
)

// JournalEntry is one recorded engine event.
type JournalEntry struct {
	Session  string // uuid of the engine run
	Seq      int64
	Kind     string
	WindowID uint32 // 0 for events without a window
	Text     string
	At       time.Time
}

type JournalRepo struct {
	db *DB
}

func NewJournalRepo(db *DB) *JournalRepo {
	return &JournalRepo{db: db}
}

// WriteBatch atomically writes a batch of entries in a single transaction.
// On error nothing is written and the caller keeps the batch.
func (r *JournalRepo) WriteBatch(ctx context.Context, entries []JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO event_journal (session_id, seq, kind, window_id, text, recorded_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			e.Session, e.Seq, e.Kind, int64(e.WindowID), e.Text, e.At,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// CountSession returns how many entries a session has recorded.
func (r *JournalRepo) CountSession(ctx context.Context, session string) (int64, error) {
	var n int64
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM event_journal WHERE session_id = $1`, session,
	).Scan(&n)
	return n, err
}

// SessionSummary describes one recorded engine run.
type SessionSummary struct {
	Session string
	Entries int64
	First   time.Time
	Last    time.Time
}

// Sessions lists recorded runs, most recent first.
func (r *JournalRepo) Sessions(ctx context.Context) ([]SessionSummary, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT session_id::text, count(*), min(recorded_at), max(recorded_at)
		 FROM event_journal GROUP BY session_id ORDER BY max(recorded_at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		if err := rows.Scan(&s.Session, &s.Entries, &s.First, &s.Last); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LoadSession returns a run's entries in sequence order.
func (r *JournalRepo) LoadSession(ctx context.Context, session string) ([]JournalEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT session_id::text, seq, kind, window_id, text, recorded_at
		 FROM event_journal WHERE session_id = $1 ORDER BY seq`, session,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var (
			e        JournalEntry
			windowID int64
		)
		if err := rows.Scan(&e.Session, &e.Seq, &e.Kind, &windowID, &e.Text, &e.At); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		e.WindowID = uint32(windowID)
		out = append(out, e)
	}
	return out, rows.Err()
}
