// Package deliver implements report delivery sinks: structured log, webhook,
// SMTP, clipboard, and the stderr last resort. Sinks are external
// collaborators from the chain's point of view; a failing sink surfaces its
// error to the caller and never re-enters the chain.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/relicta-tech/faultline/pkg/report"
)

// Sink delivers one report document somewhere. Implementations satisfy
// chain.Notifier.
type Sink interface {
	Label() string
	Deliver(ctx context.Context, doc *report.Document) error
}

// LogSink writes reports to a structured logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a log sink. A nil logger uses the default logger.
func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

// Label implements Sink.
func (s *LogSink) Label() string { return "Log" }

// Deliver implements Sink.
func (s *LogSink) Deliver(_ context.Context, doc *report.Document) error {
	s.logger.Error(doc.Title,
		"summary", doc.Summary,
		"kind", doc.Kind,
		"id", doc.ID,
		"app", doc.App,
	)
	return nil
}

// StderrSink writes the plain-text report to a stream, os.Stderr by default.
// It is the delivery analogue of the fallback sink.
type StderrSink struct {
	w io.Writer
}

// NewStderrSink creates a stderr sink writing to w, or os.Stderr when nil.
func NewStderrSink(w io.Writer) *StderrSink {
	if w == nil {
		w = os.Stderr
	}
	return &StderrSink{w: w}
}

// Label implements Sink.
func (s *StderrSink) Label() string { return "Standard Error" }

// Deliver implements Sink.
func (s *StderrSink) Deliver(_ context.Context, doc *report.Document) error {
	if _, err := fmt.Fprint(s.w, doc.Text()); err != nil {
		return err
	}
	return nil
}

// Multi fans one document out to several sinks in order. Every sink is
// attempted; the joined errors of the failed ones are returned.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Label() string { return "Multi" }

func (m multiSink) Deliver(ctx context.Context, doc *report.Document) error {
	var errs []error
	for _, s := range m {
		if err := s.Deliver(ctx, doc); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Label(), err))
		}
	}
	return errors.Join(errs...)
}
