// journalexport dumps the engine's event journal to YAML.
//
// Usage:
//
//	go run ./cmd/journalexport <command> [-config path] [-session id] [-out file]
//
// Commands: sessions, export
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/IlyaYakubovichh/Gojo/internal/config"
	"github.com/IlyaYakubovichh/Gojo/internal/persist"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML output structs
// ---------------------------------------------------------------------------

type journalYAML struct {
	Session string           `yaml:"session"`
	Started string           `yaml:"started"`
	Counts  map[string]int   `yaml:"counts"`
	Windows []uint32         `yaml:"windows,flow"`
	Events  []eventEntryYAML `yaml:"events"`
}

type eventEntryYAML struct {
	Seq      int64  `yaml:"seq"`
	OffsetMS int64  `yaml:"offset_ms"`
	Kind     string `yaml:"kind"`
	WindowID uint32 `yaml:"window_id,omitempty"`
	Text     string `yaml:"text"`
}

// buildJournal shapes a session's entries for output. Offsets are relative
// to the first entry.
func buildJournal(session string, entries []persist.JournalEntry) journalYAML {
	out := journalYAML{Session: session, Counts: make(map[string]int)}
	if len(entries) == 0 {
		return out
	}
	start := entries[0].At
	out.Started = start.UTC().Format(time.RFC3339Nano)

	seen := make(map[uint32]bool)
	for _, e := range entries {
		out.Counts[e.Kind]++
		if e.WindowID != 0 && !seen[e.WindowID] {
			seen[e.WindowID] = true
			out.Windows = append(out.Windows, e.WindowID)
		}
		out.Events = append(out.Events, eventEntryYAML{
			Seq:      e.Seq,
			OffsetMS: e.At.Sub(start).Milliseconds(),
			Kind:     e.Kind,
			WindowID: e.WindowID,
			Text:     e.Text,
		})
	}
	sort.Slice(out.Windows, func(i, j int) bool { return out.Windows[i] < out.Windows[j] })
	return out
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printUsage() {
	fmt.Println("Usage: journalexport <command> [-config path] [-session id] [-out file]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  sessions   list recorded engine runs")
	fmt.Println("  export     write one run as YAML (stdout unless -out is given)")
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		printUsage()
		return
	}

	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	cfgPath := fs.String("config", "config/engine.toml", "engine config with the [journal] section")
	session := fs.String("session", "", "session id to export")
	outPath := fs.String("out", "", "output file")
	_ = fs.Parse(os.Args[2:])

	if err := run(cmd, *cfgPath, *session, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR [%s]: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(cmd, cfgPath, session, outPath string) error {
	if cmd != "sessions" && cmd != "export" {
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	if cmd == "export" && session == "" {
		return fmt.Errorf("-session is required")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Journal, zap.NewNop())
	if err != nil {
		return err
	}
	defer db.Shutdown()
	repo := persist.NewJournalRepo(db)

	if cmd == "sessions" {
		sessions, err := repo.Sessions(ctx)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Printf("%s  %6d entries  %s .. %s\n", s.Session, s.Entries,
				s.First.Format(time.DateTime), s.Last.Format(time.DateTime))
		}
		return nil
	}

	entries, err := repo.LoadSession(ctx, session)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("session %s has no entries", session)
	}

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := writeYAML(w, buildJournal(session, entries)); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Printf("Wrote %d journal entries to %s\n", len(entries), outPath)
	}
	return nil
}
