// Package mailer delivers email-confirmation messages off the request path.
// Requests enqueue onto a buffered channel and a single worker drains it;
// delivery failures are logged, never reported back to the enqueuer.
package mailer

import (
	"context"
	"fmt"
	"log"
)

// Message is one confirmation mail to deliver.
type Message struct {
	To       string
	Username string
}

// Sender delivers a composed message. Implemented by SMTPSender in
// production and stubbed in tests.
type Sender interface {
	Send(to, subject, body string) error
}

// TokenMinter mints the confirmation token embedded in the mail link.
type TokenMinter interface {
	GenerateEmailToken(email string) (string, error)
}

// Mailer is the channel-fed confirmation-mail worker.
type Mailer struct {
	queue   chan Message
	sender  Sender
	tokens  TokenMinter
	baseURL string
}

// New builds a Mailer with the given queue capacity.
func New(sender Sender, tokens TokenMinter, baseURL string, queueSize int) *Mailer {
	return &Mailer{
		queue:   make(chan Message, queueSize),
		sender:  sender,
		tokens:  tokens,
		baseURL: baseURL,
	}
}

// Enqueue hands a message to the worker without blocking the request.
// A full queue drops the message with a log line.
func (m *Mailer) Enqueue(msg Message) {
	select {
	case m.queue <- msg:
	default:
		log.Printf("mailer: queue full, dropping confirmation mail for %s", msg.To)
	}
}

// Run drains the queue until ctx is cancelled. Call from a goroutine.
func (m *Mailer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-m.queue:
			if err := m.deliver(msg); err != nil {
				log.Printf("mailer: send to %s failed: %v", msg.To, err)
			}
		}
	}
}

func (m *Mailer) deliver(msg Message) error {
	token, err := m.tokens.GenerateEmailToken(msg.To)
	if err != nil {
		return fmt.Errorf("mint email token: %w", err)
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nplease confirm your email address by opening the link below:\n\n%s/auth/confirmed_email/%s\n",
		msg.Username, m.baseURL, token,
	)
	return m.sender.Send(msg.To, "Confirm your email", body)
}
