package deliver

import (
	"context"

	"github.com/atotto/clipboard"

	ferrors "github.com/relicta-tech/faultline/internal/errors"
	"github.com/relicta-tech/faultline/pkg/report"
)

// ClipboardSink copies the plain-text report to the system clipboard.
type ClipboardSink struct{}

// NewClipboardSink creates a clipboard sink.
func NewClipboardSink() *ClipboardSink { return &ClipboardSink{} }

// Label implements Sink.
func (*ClipboardSink) Label() string { return "Copy to Clipboard" }

// Deliver implements Sink.
func (*ClipboardSink) Deliver(_ context.Context, doc *report.Document) error {
	if err := clipboard.WriteAll(doc.Text()); err != nil {
		return ferrors.DeliveryWrap(err, "clipboard.Deliver", "failed to copy report")
	}
	return nil
}
