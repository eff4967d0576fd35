package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the subset of the Twilio REST client used here.
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender sends WhatsApp messages through the Twilio Messages API.
type TwilioSender struct {
	api        messageCreator
	configured bool
}

// NewTwilioSender returns a sender authenticated with the account SID and auth token.
func NewTwilioSender(accountSID, authToken string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{
		api:        client.Api,
		configured: accountSID != "" && authToken != "",
	}
}

// Send delivers m and returns the provider's message SID.
// The Twilio client has no context support, so ctx only bounds how long
// Send waits; an abandoned request finishes in the background.
func (s *TwilioSender) Send(ctx context.Context, m Message) (string, error) {
	if !s.configured || m.To == "" || m.From == "" {
		return "", ErrNotConfigured
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(m.To)
	params.SetFrom(m.From)
	params.SetBody(m.Body)

	type result struct {
		sid string
		err error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := s.api.CreateMessage(params)
		if err != nil {
			done <- result{err: err}
			return
		}
		var sid string
		if resp != nil && resp.Sid != nil {
			sid = *resp.Sid
		}
		done <- result{sid: sid}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("notify: whatsapp send: %w", r.err)
		}
		return r.sid, nil
	case <-ctx.Done():
		return "", fmt.Errorf("notify: whatsapp send: %w", ctx.Err())
	}
}
