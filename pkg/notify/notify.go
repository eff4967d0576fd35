// Package notify delivers staff notifications over SMTP and the Twilio
// WhatsApp API. Senders are safe for concurrent use.
package notify

import "errors"

// ErrNotConfigured is returned when a sender lacks credentials or a destination.
var ErrNotConfigured = errors.New("notify: sender not configured")

// Email is a multipart message with a plain-text body and an HTML alternative.
type Email struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Message is a WhatsApp message. From and To carry the "whatsapp:" prefix.
type Message struct {
	From string
	To   string
	Body string
}
