package deliver

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"golang.org/x/sync/errgroup"

	ferrors "github.com/relicta-tech/faultline/internal/errors"
	"github.com/relicta-tech/faultline/pkg/report"
)

// Endpoint configures one webhook receiver.
type Endpoint struct {
	// Name identifies the endpoint in logs and errors.
	Name string
	// URL is the POST target.
	URL string
	// Secret, when set, enables HMAC-SHA256 payload signing.
	Secret string
	// Headers are additional request headers.
	Headers map[string]string
	// Timeout bounds one request (default 10s).
	Timeout time.Duration
	// RetryCount is the number of retries after the first attempt
	// (default 3).
	RetryCount int
	// RetryDelay is the initial backoff delay (default 1s).
	RetryDelay time.Duration
}

func (e *Endpoint) timeout() time.Duration {
	if e.Timeout == 0 {
		return 10 * time.Second
	}
	return e.Timeout
}

func (e *Endpoint) retryCount() int {
	if e.RetryCount == 0 {
		return 3
	}
	return e.RetryCount
}

func (e *Endpoint) retryDelay() time.Duration {
	if e.RetryDelay == 0 {
		return time.Second
	}
	return e.RetryDelay
}

// Payload is the JSON body sent to webhook endpoints.
type Payload struct {
	// Event is the event name.
	Event string `json:"event"`
	// Timestamp is when the fault was captured.
	Timestamp time.Time `json:"timestamp"`
	// ReportID is the occurrence identifier.
	ReportID string `json:"report_id"`
	// Kind is the fault kind name.
	Kind string `json:"kind"`
	// App and Version identify the reporting application.
	App     string `json:"app,omitempty"`
	Version string `json:"version,omitempty"`
	// Rendered display fields.
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
	Origin  string `json:"origin,omitempty"`
}

// WebhookSink POSTs fault reports to one or more HTTP endpoints with HMAC
// signing and retried delivery.
type WebhookSink struct {
	targets []webhookTarget
	client  *http.Client
}

type webhookTarget struct {
	ep      Endpoint
	retrier retry.Retry[struct{}]
}

// NewWebhookSink creates a webhook sink for the given endpoints.
func NewWebhookSink(endpoints ...Endpoint) *WebhookSink {
	s := &WebhookSink{client: &http.Client{}}
	for _, ep := range endpoints {
		s.targets = append(s.targets, webhookTarget{
			ep: ep,
			retrier: retry.New[struct{}](retry.Config{
				MaxAttempts:   ep.retryCount() + 1,
				InitialDelay:  ep.retryDelay(),
				MaxDelay:      30 * time.Second,
				BackoffPolicy: retry.BackoffExponential,
				Multiplier:    2.0,
				Jitter:        true,
			}),
		})
	}
	return s
}

// Label implements Sink.
func (s *WebhookSink) Label() string { return "Webhook" }

// Deliver implements Sink. Endpoints are attempted concurrently; every
// endpoint gets its full retry budget regardless of the others.
func (s *WebhookSink) Deliver(ctx context.Context, doc *report.Document) error {
	body, err := json.Marshal(buildPayload(doc))
	if err != nil {
		return ferrors.DeliveryWrap(err, "webhook.Deliver", "failed to marshal payload")
	}

	var g errgroup.Group
	for _, t := range s.targets {
		g.Go(func() error {
			_, err := t.retrier.Do(ctx, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, s.send(ctx, &t.ep, body)
			})
			if err != nil {
				return ferrors.DeliveryWrap(err, "webhook.Deliver",
					fmt.Sprintf("endpoint %q failed", t.ep.Name))
			}
			return nil
		})
	}
	return g.Wait()
}

// buildPayload renders the redacted JSON payload for one document.
func buildPayload(doc *report.Document) *Payload {
	return &Payload{
		Event:     "fault.captured",
		Timestamp: doc.Time,
		ReportID:  doc.ID,
		Kind:      doc.Kind,
		App:       doc.App,
		Version:   doc.Version,
		Title:     ferrors.RedactSensitive(doc.Title),
		Summary:   ferrors.RedactSensitive(doc.Summary),
		Detail:    ferrors.RedactSensitive(doc.Detail),
		Origin:    ferrors.RedactSensitive(doc.Origin),
	}
}

// send performs a single webhook request.
func (s *WebhookSink) send(ctx context.Context, ep *Endpoint, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, ep.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Faultline-Webhook/1.0")
	req.Header.Set("X-Faultline-Event", "fault.captured")
	for key, value := range ep.Headers {
		req.Header.Set(key, value)
	}
	if ep.Secret != "" {
		req.Header.Set("X-Faultline-Signature", "sha256="+signPayload(body, ep.Secret))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// signPayload creates an HMAC-SHA256 signature of the payload.
func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature verifies a webhook signature. This is a helper for webhook
// receivers to validate payloads.
func VerifySignature(payload []byte, signature, secret string) bool {
	signature = strings.TrimPrefix(signature, "sha256=")
	expected := signPayload(payload, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
