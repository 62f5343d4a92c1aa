package chain

import (
	"context"
	"sync"
	"time"

	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/format"
	"github.com/relicta-tech/faultline/pkg/report"
)

// Notifier is the delivery surface a NotifyPlugin renders into. The sinks in
// pkg/deliver satisfy it.
type Notifier interface {
	Label() string
	Deliver(ctx context.Context, doc *report.Document) error
}

// NotifyPlugin resolves the best-matching formatter for a fault, renders the
// four display fields, and hands the resulting document to one long-lived
// delivery surface. The surface is reused across occurrences; a mutex
// serializes access because Go gives no single-threaded dispatch guarantee.
type NotifyPlugin struct {
	mu       sync.Mutex
	registry *format.Registry
	notifier Notifier
	fb       FallbackSink

	app       string
	version   string
	exclusive bool
	timeout   time.Duration
}

// NotifyOption configures a NotifyPlugin.
type NotifyOption func(*NotifyPlugin)

// WithAppInfo sets the application name and version stamped on reports.
func WithAppInfo(app, version string) NotifyOption {
	return func(p *NotifyPlugin) {
		p.app = app
		p.version = version
	}
}

// WithExclusive controls whether a successfully delivered notification
// claims the fault (returns false). Default true: a fault produces exactly
// one terminal action.
func WithExclusive(exclusive bool) NotifyOption {
	return func(p *NotifyPlugin) { p.exclusive = exclusive }
}

// WithDeliveryTimeout bounds how long one delivery may take.
func WithDeliveryTimeout(d time.Duration) NotifyOption {
	return func(p *NotifyPlugin) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithNotifyFallback replaces the stderr fallback sink.
func WithNotifyFallback(fb FallbackSink) NotifyOption {
	return func(p *NotifyPlugin) {
		if fb != nil {
			p.fb = fb
		}
	}
}

// NewNotifyPlugin creates a notification plugin over the given registry and
// delivery surface.
func NewNotifyPlugin(registry *format.Registry, notifier Notifier, opts ...NotifyOption) *NotifyPlugin {
	p := &NotifyPlugin{
		registry:  registry,
		notifier:  notifier,
		fb:        stderrFallback(),
		exclusive: true,
		timeout:   10 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Plugin.
func (p *NotifyPlugin) Name() string { return "notify" }

// Handle implements Plugin. A delivered notification claims the fault when
// the plugin is exclusive; a delivery failure is warned to the fallback sink
// and the chain continues so the fault is not lost silently. Delivery errors
// never re-enter the chain.
func (p *NotifyPlugin) Handle(rep *fault.Report) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	tr := p.registry.Translate(rep)
	doc := report.New(tr, rep, p.app, p.version)

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.notifier.Deliver(ctx, doc); err != nil {
		p.fb.Warn(p.Name(), err)
		return true
	}
	return !p.exclusive
}
