package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/format"
	"github.com/relicta-tech/faultline/pkg/report"
)

// recordingNotifier captures delivered documents.
type recordingNotifier struct {
	docs []*report.Document
	err  error
}

func (r *recordingNotifier) Label() string { return "recording" }

func (r *recordingNotifier) Deliver(_ context.Context, doc *report.Document) error {
	r.docs = append(r.docs, doc)
	return r.err
}

func TestNotifyPluginClaimsOnDelivery(t *testing.T) {
	n := &recordingNotifier{}
	p := NewNotifyPlugin(format.NewRegistry(), n, WithAppInfo("myapp", "v1.2.3"))

	rep := fault.New(fault.KindIO, &fault.Value{Message: "disk full"}, nil)
	cont := p.Handle(rep)

	assert.False(t, cont, "an exclusive notify plugin claims the fault")
	require.Len(t, n.docs, 1)

	doc := n.docs[0]
	assert.Equal(t, "Unhandled Error (io)", doc.Title)
	assert.Equal(t, "io: disk full", doc.Summary)
	assert.Equal(t, "myapp", doc.App)
	assert.Equal(t, "v1.2.3", doc.Version)
	assert.Equal(t, rep.ID(), doc.ID)
}

func TestNotifyPluginNonExclusive(t *testing.T) {
	n := &recordingNotifier{}
	p := NewNotifyPlugin(format.NewRegistry(), n, WithExclusive(false))

	assert.True(t, p.Handle(testReport()))
	assert.Len(t, n.docs, 1)
}

func TestNotifyPluginDeliveryFault(t *testing.T) {
	fb := &countingFallback{}
	n := &recordingNotifier{err: errors.New("smtp down")}
	p := NewNotifyPlugin(format.NewRegistry(), n, WithNotifyFallback(fb))

	cont := p.Handle(testReport())

	assert.True(t, cont, "a failed delivery must not claim the fault")
	require.Len(t, fb.warns, 1, "delivery faults surface once on the fallback sink")
	assert.ErrorContains(t, fb.warns[0], "smtp down")
}

func TestNotifyPluginNilReport(t *testing.T) {
	n := &recordingNotifier{}
	p := NewNotifyPlugin(format.NewRegistry(), n)

	assert.NotPanics(t, func() { p.Handle(nil) })
	require.Len(t, n.docs, 1)
	assert.Equal(t, "Unhandled Error", n.docs[0].Title)
}
