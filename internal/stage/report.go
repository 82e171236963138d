// SPDX-License-Identifier: MPL-2.0

package stage

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/exp/slices"
)

const (
	// StatusInfo is a progress line that neither succeeds nor fails.
	StatusInfo Status = iota
	// StatusOK is a step that succeeded.
	StatusOK
	// StatusWarn is an optional step that failed.
	StatusWarn
	// StatusError is a required step that failed.
	StatusError
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

type (
	// Status classifies a report entry.
	Status int

	// Entry is one line of a Report.
	Entry struct {
		Status  Status
		Message string
	}

	// Report collects the outcome of each collection step. The zero value is
	// ready to use.
	Report struct {
		entries []Entry
		failed  bool
	}
)

// String returns the marker printed for s.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "WARN"
	case StatusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (s Status) style() lipgloss.Style {
	switch s {
	case StatusOK:
		return okStyle
	case StatusWarn:
		return warnStyle
	case StatusError:
		return errorStyle
	default:
		return infoStyle
	}
}

// Record adds the outcome of a required step and returns ok.
// A failed required step marks the whole report failed.
func (r *Report) Record(msg string, ok bool) bool {
	status := StatusOK
	if !ok {
		status = StatusError
		r.failed = true
	}
	r.entries = append(r.entries, Entry{Status: status, Message: msg})
	return ok
}

// RecordOptional adds the outcome of a best-effort step. Failures are kept
// as warnings and never fail the report.
func (r *Report) RecordOptional(msg string, ok bool) bool {
	status := StatusOK
	if !ok {
		status = StatusWarn
	}
	r.entries = append(r.entries, Entry{Status: status, Message: msg})
	return ok
}

// Skip adds an informational line.
func (r *Report) Skip(msg string) {
	r.entries = append(r.entries, Entry{Status: StatusInfo, Message: msg})
}

// Failed reports whether any required step failed.
func (r *Report) Failed() bool {
	return r.failed
}

// Entries returns a copy of the recorded entries in order.
func (r *Report) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Missing returns the messages of the failed required steps.
func (r *Report) Missing() []string {
	var msgs []string
	for _, e := range r.entries {
		if e.Status == StatusError {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// WriteTo prints one styled "[STATUS] message" line per entry.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, e := range r.entries {
		b.WriteString(e.Status.style().Render("[" + e.Status.String() + "]"))
		b.WriteByte(' ')
		b.WriteString(e.Message)
		b.WriteByte('\n')
	}
	n, err := fmt.Fprint(w, b.String())
	return int64(n), err
}
