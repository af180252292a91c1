package setup

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Severity classifies a report step.
type Severity string

// Step severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Run outcomes returned by Report.Status.
const (
	StatusSkipped   = "skipped"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Step is one line of the setup log.
type Step struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Report is the ordered log of one setup run.
type Report struct {
	Version    string `json:"version"`
	Skipped    bool   `json:"skipped"`
	Steps      []Step `json:"steps"`
	Statements int    `json:"statements"` // DDL and DML statements issued

	logger zerolog.Logger
}

func newReport() *Report {
	return &Report{
		Steps:  []Step{},
		logger: log.Logger.With().Str("component", "setup").Logger(),
	}
}

// HasError reports whether any step failed.
func (r *Report) HasError() bool {
	for _, s := range r.Steps {
		if s.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Status is failed when any step failed, else skipped or succeeded.
func (r *Report) Status() string {
	switch {
	case r.HasError():
		return StatusFailed
	case r.Skipped:
		return StatusSkipped
	default:
		return StatusSucceeded
	}
}

// WriteTo writes the steps as plain text lines.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var total int64

	for _, s := range r.Steps {
		n, err := fmt.Fprintf(w, "[%-7s] %s\n", s.Severity, s.Message)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func (r *Report) add(sev Severity, msg string) {
	r.Steps = append(r.Steps, Step{Severity: sev, Message: msg})

	ev := r.logger.Info()
	if sev == SeverityError {
		ev = r.logger.Error()
	}

	ev.Str("severity", string(sev)).Msg(msg)
}

func (r *Report) infof(format string, args ...any) {
	r.add(SeverityInfo, fmt.Sprintf(format, args...))
}

func (r *Report) successf(format string, args ...any) {
	r.add(SeveritySuccess, fmt.Sprintf(format, args...))
}

func (r *Report) errorf(format string, args ...any) {
	r.add(SeverityError, fmt.Sprintf(format, args...))
}
