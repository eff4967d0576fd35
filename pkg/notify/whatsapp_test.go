package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type stubCreator struct {
	got   *twilioApi.CreateMessageParams
	sid   string
	err   error
	delay time.Duration
}

func (s *stubCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	s.got = params
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	sid := s.sid
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func newStubSender(c messageCreator) *TwilioSender {
	return &TwilioSender{api: c, configured: true}
}

func TestTwilioSender_Send(t *testing.T) {
	stub := &stubCreator{sid: "SM123"}
	s := newStubSender(stub)

	sid, err := s.Send(context.Background(), Message{
		From: "whatsapp:+14155238886",
		To:   "whatsapp:+910000000000",
		Body: "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sid != "SM123" {
		t.Fatalf("expected SM123, got %q", sid)
	}
	if *stub.got.To != "whatsapp:+910000000000" || *stub.got.From != "whatsapp:+14155238886" || *stub.got.Body != "hello" {
		t.Fatalf("unexpected params: to=%s from=%s body=%s", *stub.got.To, *stub.got.From, *stub.got.Body)
	}
}

func TestTwilioSender_ProviderError(t *testing.T) {
	providerErr := errors.New("21211 invalid To number")
	s := newStubSender(&stubCreator{err: providerErr})

	_, err := s.Send(context.Background(), Message{From: "whatsapp:+1", To: "whatsapp:+2", Body: "x"})
	if !errors.Is(err, providerErr) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestTwilioSender_ContextDeadline(t *testing.T) {
	s := newStubSender(&stubCreator{sid: "SM1", delay: 200 * time.Millisecond})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Send(ctx, Message{From: "whatsapp:+1", To: "whatsapp:+2", Body: "x"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTwilioSender_NotConfigured(t *testing.T) {
	s := NewTwilioSender("", "")
	if _, err := s.Send(context.Background(), Message{From: "whatsapp:+1", To: "whatsapp:+2"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	s = newStubSender(&stubCreator{})
	if _, err := s.Send(context.Background(), Message{From: "whatsapp:+1"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured for empty destination, got %v", err)
	}
}
