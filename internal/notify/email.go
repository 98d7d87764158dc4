package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/noah-isme/toko-console/internal/common"
)

// OrderUpdateSubject is the subject of every order status mail.
const OrderUpdateSubject = "Order update"

// EmailObserver forwards order status messages to a single mailbox. It
// implements order.Observer.
type EmailObserver struct {
	Email string
	Mail  common.EmailSender
}

// NewEmailObserver binds an observer to email.
func NewEmailObserver(email string, mail common.EmailSender) *EmailObserver {
	return &EmailObserver{Email: strings.TrimSpace(email), Mail: mail}
}

// Notify sends message to the bound address.
func (o *EmailObserver) Notify(_ context.Context, message string) error {
	if o == nil || o.Mail == nil || o.Email == "" {
		return nil
	}
	if err := o.Mail.Send(o.Email, OrderUpdateSubject, message); err != nil {
		return fmt.Errorf("email notify %s: %w", o.Email, err)
	}
	return nil
}

// ConsoleMail prints mails to a writer instead of delivering them.
type ConsoleMail struct {
	Out io.Writer
}

// Send implements common.EmailSender.
func (m ConsoleMail) Send(to, _, body string) error {
	out := m.Out
	if out == nil {
		out = os.Stdout
	}
	_, err := fmt.Fprintf(out, "📧 Notification for %s: %s\n", to, body)
	return err
}
