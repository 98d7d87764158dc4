package notify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/notify"
)

type failingMailer struct{}

func (failingMailer) Send(string, string, string) error { return errors.New("mailbox full") }

func TestEmailObserverSendsToBoundAddress(t *testing.T) {
	mail := &common.InMemoryEmail{}
	observer := notify.NewEmailObserver(" buyer@example.com ", mail)

	require.NoError(t, observer.Notify(context.Background(), "Order order1 updated to: PAID"))
	require.Len(t, mail.Outbox, 1)
	require.Equal(t, "buyer@example.com", mail.Outbox[0].To)
	require.Equal(t, notify.OrderUpdateSubject, mail.Outbox[0].Subject)
	require.Equal(t, "Order order1 updated to: PAID", mail.Outbox[0].Body)
}

func TestEmailObserverWrapsSendError(t *testing.T) {
	observer := notify.NewEmailObserver("buyer@example.com", failingMailer{})
	err := observer.Notify(context.Background(), "hello")
	require.ErrorContains(t, err, "mailbox full")
	require.ErrorContains(t, err, "buyer@example.com")
}

func TestEmailObserverWithoutMailerIsNoop(t *testing.T) {
	require.NoError(t, notify.NewEmailObserver("buyer@example.com", nil).Notify(context.Background(), "x"))
}

func TestConsoleMail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, notify.ConsoleMail{Out: &buf}.Send("buyer@example.com", notify.OrderUpdateSubject, "Order order2 updated to: SHIPPED"))
	require.Equal(t, "📧 Notification for buyer@example.com: Order order2 updated to: SHIPPED\n", buf.String())
}
