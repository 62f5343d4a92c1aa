package deliver

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	ferrors "github.com/relicta-tech/faultline/internal/errors"
	"github.com/relicta-tech/faultline/pkg/report"
)

// SMTPConfig configures the mail sink.
type SMTPConfig struct {
	// Host is the SMTP server hostname (default "localhost").
	Host string
	// Port is the SMTP server port (default 25).
	Port int
	// From is the sender address.
	From string
	// To are the recipient addresses.
	To []string
	// SubjectPrefix is prepended to the report title (default "[faultline] ").
	SubjectPrefix string
	// Username and Password enable PLAIN authentication when set.
	Username string
	Password string
}

// SMTPSink mails the plain-text report to a fixed recipient list.
type SMTPSink struct {
	cfg SMTPConfig
	// send is swapped out in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSink creates a mail sink.
func NewSMTPSink(cfg SMTPConfig) *SMTPSink {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 25
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = "[faultline] "
	}
	return &SMTPSink{cfg: cfg, send: smtp.SendMail}
}

// Label implements Sink.
func (s *SMTPSink) Label() string { return "Send Email" }

// Deliver implements Sink. net/smtp has no context support, so the send runs
// on its own goroutine and the context bounds how long we wait for it.
func (s *SMTPSink) Deliver(ctx context.Context, doc *report.Document) error {
	const op = "smtp.Deliver"
	if s.cfg.From == "" || len(s.cfg.To) == 0 {
		return ferrors.New(ferrors.KindConfig, "smtp sink requires from and to addresses")
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	msg := s.message(doc)

	done := make(chan error, 1)
	go func() {
		done <- s.send(addr, auth, s.cfg.From, s.cfg.To, msg)
	}()

	select {
	case <-ctx.Done():
		return ferrors.DeliveryWrap(ctx.Err(), op, "mail send timed out")
	case err := <-done:
		if err != nil {
			return ferrors.DeliveryWrap(err, op, "mail send failed")
		}
		return nil
	}
}

// message assembles the RFC 5322 message. The body is the redacted
// plain-text report.
func (s *SMTPSink) message(doc *report.Document) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(s.cfg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s%s\r\n", s.cfg.SubjectPrefix, doc.Title)
	fmt.Fprintf(&b, "Date: %s\r\n", doc.Time.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(doc.Text())
	return []byte(b.String())
}
