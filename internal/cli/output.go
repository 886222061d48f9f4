package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dshills/orderly/internal/engine/tree"
	"github.com/dshills/orderly/internal/event"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Invariant violation or empty query result
	ExitCommandError = 2 // Command error (unreadable dataset, bad arguments)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// entry is the printable form of a map entry.
type entry = tree.Pair[string, string]

// writeResult prints v in the configured format. Text output prints entries as
// tab-separated key/value lines and anything else with %v.
func writeResult(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}

	switch v := v.(type) {
	case entry:
		_, err := fmt.Fprintf(w, "%s\t%s\n", v.Key, v.Value)
		return err
	case []entry:
		for _, p := range v {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, s := range v {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

// changeRecord is the structured form of a change event.
type changeRecord struct {
	Cleared *int   `json:"cleared,omitempty" yaml:"cleared,omitempty"`
	Removed *batch `json:"removed,omitempty" yaml:"removed,omitempty"`
	Added   *batch `json:"added,omitempty" yaml:"added,omitempty"`
	Summary string `json:"summary" yaml:"summary"`
}

type batch struct {
	At      int     `json:"at" yaml:"at"`
	Entries []entry `json:"entries" yaml:"entries"`
}

func toBatch(m *event.Mod[entry]) *batch {
	if m == nil {
		return nil
	}
	b := &batch{At: m.At, Entries: []entry{}}
	for p := range m.Elements.All() {
		b.Entries = append(b.Entries, p)
	}
	return b
}

// writeChange prints a change event. In text format the summary line is
// followed by one "- key=value" line per removed entry and one "+ key=value"
// line per added entry.
func writeChange(w io.Writer, format string, c event.Change[entry]) error {
	rec := changeRecord{
		Removed: toBatch(c.Removed),
		Added:   toBatch(c.Added),
		Summary: c.String(),
	}
	if c.HasCleared {
		rec.Cleared = &c.Cleared
	}

	if format == "json" {
		return json.NewEncoder(w).Encode(rec)
	}
	if format == "yaml" {
		return writeResult(w, "yaml", []changeRecord{rec})
	}

	if _, err := fmt.Fprintln(w, rec.Summary); err != nil {
		return err
	}
	for _, side := range []struct {
		sign string
		b    *batch
	}{{"-", rec.Removed}, {"+", rec.Added}} {
		if side.b == nil {
			continue
		}
		for _, p := range side.b.Entries {
			if _, err := fmt.Fprintf(w, "%s %s=%s\n", side.sign, p.Key, p.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
