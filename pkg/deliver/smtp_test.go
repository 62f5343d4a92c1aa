package deliver

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/relicta-tech/faultline/internal/errors"
)

func TestSMTPDefaults(t *testing.T) {
	sink := NewSMTPSink(SMTPConfig{From: "app@example.com", To: []string{"ops@example.com"}})

	assert.Equal(t, "localhost", sink.cfg.Host)
	assert.Equal(t, 25, sink.cfg.Port)
	assert.Equal(t, "[faultline] ", sink.cfg.SubjectPrefix)
}

func TestSMTPDeliverRequiresAddresses(t *testing.T) {
	sink := NewSMTPSink(SMTPConfig{})

	err := sink.Deliver(context.Background(), testDocument())

	require.Error(t, err)
	assert.True(t, ferrors.IsKind(err, ferrors.KindConfig))
}

func TestSMTPDeliver(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sink := NewSMTPSink(SMTPConfig{
		Host: "mail.example.com",
		Port: 587,
		From: "app@example.com",
		To:   []string{"ops@example.com", "dev@example.com"},
	})
	sink.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		assert.Nil(t, a)
		return nil
	}

	err := sink.Deliver(context.Background(), testDocument())

	require.NoError(t, err)
	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, "app@example.com", gotFrom)
	assert.Equal(t, []string{"ops@example.com", "dev@example.com"}, gotTo)

	msg := string(gotMsg)
	assert.Contains(t, msg, "Subject: [faultline] Unhandled Error (io)\r\n")
	assert.Contains(t, msg, "To: ops@example.com, dev@example.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n")
	assert.Contains(t, msg, "io: disk full")
}

func TestSMTPDeliverAuth(t *testing.T) {
	var gotAuth smtp.Auth
	sink := NewSMTPSink(SMTPConfig{
		From:     "app@example.com",
		To:       []string{"ops@example.com"},
		Username: "user",
		Password: "pass",
	})
	sink.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAuth = a
		return nil
	}

	require.NoError(t, sink.Deliver(context.Background(), testDocument()))
	assert.NotNil(t, gotAuth)
}

func TestSMTPDeliverSendFailure(t *testing.T) {
	sink := NewSMTPSink(SMTPConfig{From: "app@example.com", To: []string{"ops@example.com"}})
	sink.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		return assert.AnError
	}

	err := sink.Deliver(context.Background(), testDocument())

	require.Error(t, err)
	assert.True(t, ferrors.IsKind(err, ferrors.KindDelivery))
}

func TestSMTPDeliverContextCancelled(t *testing.T) {
	blocked := make(chan struct{})
	sink := NewSMTPSink(SMTPConfig{From: "app@example.com", To: []string{"ops@example.com"}})
	sink.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		<-blocked
		return nil
	}
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sink.Deliver(ctx, testDocument())

	require.Error(t, err)
	assert.True(t, ferrors.IsKind(err, ferrors.KindDelivery))
}
