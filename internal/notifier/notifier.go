// Package notifier delivers one-time codes to users by email. Delivery is
// fire-and-forget: handlers enqueue a send and never wait for, or learn
// about, the outcome. Failures go to the log only.
package notifier

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mahmoud-Sakhy/user-auth-api/internal/otp"
	"github.com/Mahmoud-Sakhy/user-auth-api/shared/mailer"
)

const queueSize = 64

type job struct {
	purpose otp.Purpose
	email   string
	code    string
	ttl     time.Duration
}

// EmailNotifier sends one-time code emails through a background worker.
type EmailNotifier struct {
	mailer *mailer.Mailer
	logger *zerolog.Logger
	jobs   chan job
	wg     sync.WaitGroup
}

// NewEmailNotifier creates an EmailNotifier and starts its delivery worker.
func NewEmailNotifier(m *mailer.Mailer, logger *zerolog.Logger) *EmailNotifier {
	n := &EmailNotifier{
		mailer: m,
		logger: logger,
		jobs:   make(chan job, queueSize),
	}

	n.wg.Add(1)
	go n.run()

	return n
}

// Dispatch enqueues a code email without blocking. When the queue is full the
// send is dropped and logged; the caller's operation is unaffected either way.
func (n *EmailNotifier) Dispatch(purpose otp.Purpose, email, code string, expiresAt time.Time) {
	j := job{
		purpose: purpose,
		email:   email,
		code:    code,
		ttl:     time.Until(expiresAt).Round(time.Minute),
	}

	select {
	case n.jobs <- j:
	default:
		n.logger.Error().
			Str("purpose", string(purpose)).
			Str("email", email).
			Msg("notification queue full, dropping code email")
	}
}

// Close stops accepting new sends and waits for queued emails to drain.
func (n *EmailNotifier) Close() {
	close(n.jobs)
	n.wg.Wait()
}

func (n *EmailNotifier) run() {
	defer n.wg.Done()

	for j := range n.jobs {
		subject, body := composeEmail(j)

		if err := n.mailer.SendHTML([]string{j.email}, subject, body); err != nil {
			n.logger.Error().Err(err).
				Str("purpose", string(j.purpose)).
				Str("email", j.email).
				Msg("failed to send code email")
			continue
		}

		n.logger.Info().
			Str("purpose", string(j.purpose)).
			Str("email", j.email).
			Msg("code email sent")
	}
}

func composeEmail(j job) (subject, body string) {
	minutes := int(j.ttl.Minutes())

	if j.purpose == otp.PurposeReset {
		subject = "Password Reset Code"
		body = fmt.Sprintf(`
			<h2>Password Reset</h2>
			<p>You requested to reset the password for your account. Use the following code:</p>
			<h1 style="letter-spacing: 5px;">%s</h1>
			<p>This code is valid for %d minutes only.<br>
			If you did not request a password reset, you can safely ignore this email.</p>
			<p><strong>Security tip:</strong> never share this code with anyone.</p>
		`, j.code, minutes)
		return subject, body
	}

	subject = "Account Verification Code"
	body = fmt.Sprintf(`
		<h2>Welcome!</h2>
		<p>Thank you for registering. Use the following code to verify your account:</p>
		<h1 style="letter-spacing: 5px;">%s</h1>
		<p>This code is valid for %d minutes only.<br>
		If you did not request this code, you can safely ignore this email.</p>
	`, j.code, minutes)
	return subject, body
}
