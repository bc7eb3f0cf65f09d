package messaging

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"relay/internal/domain/models"
	"relay/internal/metrics"

	"github.com/messagebird/go-rest-api/v9/sms"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestIdentity(t *testing.T) {
	cases := []struct {
		channel, phone, want string
	}{
		{"whatsapp", "919876543210", "whatsapp:+919876543210"},
		{"whatsapp", "+91 98765 43210", "whatsapp:+919876543210"},
		{"", "919876543210", "+919876543210"},
		{"whatsapp", "whatsapp:+14155238886", "whatsapp:+14155238886"},
		{"whatsapp", "  ", ""},
	}
	for _, tc := range cases {
		if got := Identity(tc.channel, tc.phone); got != tc.want {
			t.Fatalf("Identity(%q, %q) = %q want %q", tc.channel, tc.phone, got, tc.want)
		}
	}
}

func TestAddressAndDisplayNumber(t *testing.T) {
	if got := Address("whatsapp:+919876543210"); got != "+919876543210" {
		t.Fatalf("Address = %q", got)
	}
	if got := DisplayNumber("919876543210"); got != "+919876543210" {
		t.Fatalf("DisplayNumber = %q", got)
	}
	if got := DisplayNumber("+919876543210"); got != "+919876543210" {
		t.Fatalf("DisplayNumber = %q", got)
	}
}

type fakeCreator struct {
	got *openapi.CreateMessageParams
	sid string
	err error
}

func (f *fakeCreator) CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	sid := f.sid
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSenderSend(t *testing.T) {
	fake := &fakeCreator{sid: "SM123"}
	s := &TwilioSender{api: fake}

	id, err := s.Send(context.Background(), models.OutboundMessage{
		From: "whatsapp:+14155238886",
		To:   "whatsapp:+919876543210",
		Body: "hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "SM123" {
		t.Fatalf("id = %q", id)
	}
	if *fake.got.From != "whatsapp:+14155238886" || *fake.got.To != "whatsapp:+919876543210" || *fake.got.Body != "hello" {
		t.Fatalf("params not forwarded: %+v", fake.got)
	}
}

func TestTwilioSenderWrapsError(t *testing.T) {
	cause := errors.New("21211 invalid to")
	s := &TwilioSender{api: &fakeCreator{err: cause}}

	_, err := s.Send(context.Background(), models.OutboundMessage{To: "whatsapp:+1"})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestTwilioSenderHonoursCancelledContext(t *testing.T) {
	fake := &fakeCreator{sid: "SM1"}
	s := &TwilioSender{api: fake}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Send(ctx, models.OutboundMessage{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if fake.got != nil {
		t.Fatalf("provider called after cancellation")
	}
}

func TestEmptyResponse(t *testing.T) {
	doc := EmptyResponse()
	if !strings.Contains(doc, "<Response") {
		t.Fatalf("missing Response element: %q", doc)
	}
	if strings.Contains(doc, "<Message") {
		t.Fatalf("acknowledgment should be empty: %q", doc)
	}
}

func TestMessageBirdSenderStripsChannel(t *testing.T) {
	var gotFrom string
	var gotTo []string
	s := &MessageBirdSender{create: func(originator string, recipients []string, body string) (*sms.Message, error) {
		gotFrom, gotTo = originator, recipients
		return &sms.Message{ID: "mb-1"}, nil
	}}

	id, err := s.Send(context.Background(), models.OutboundMessage{
		From: "whatsapp:+14155238886",
		To:   "whatsapp:+919876543210",
		Body: "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "mb-1" || gotFrom != "14155238886" || len(gotTo) != 1 || gotTo[0] != "919876543210" {
		t.Fatalf("id=%q from=%q to=%v", id, gotFrom, gotTo)
	}
}

func TestMessageBirdSenderRejectsEmptyRecipient(t *testing.T) {
	called := false
	s := &MessageBirdSender{create: func(string, []string, string) (*sms.Message, error) {
		called = true
		return &sms.Message{}, nil
	}}
	if _, err := s.Send(context.Background(), models.OutboundMessage{To: "whatsapp:"}); err == nil {
		t.Fatalf("expected error for empty recipient")
	}
	if called {
		t.Fatalf("provider called for empty recipient")
	}
}

type stubSender struct{ err error }

func (s stubSender) Send(context.Context, models.OutboundMessage) (string, error) {
	return "id", s.err
}

func TestInstrumentRecordsResults(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	ok := Instrument(stubSender{}, ProviderTwilio, m)
	bad := Instrument(stubSender{err: errors.New("down")}, ProviderTwilio, m)

	_, _ = ok.Send(context.Background(), models.OutboundMessage{})
	_, _ = bad.Send(context.Background(), models.OutboundMessage{})
	_, _ = bad.Send(context.Background(), models.OutboundMessage{})

	if got := testutil.ToFloat64(m.MessagesSent.WithLabelValues(ProviderTwilio, "ok")); got != 1 {
		t.Fatalf("ok = %v", got)
	}
	if got := testutil.ToFloat64(m.MessagesSent.WithLabelValues(ProviderTwilio, "error")); got != 2 {
		t.Fatalf("error = %v", got)
	}
}

func TestInstrumentWithoutMetricsReturnsNext(t *testing.T) {
	next := stubSender{}
	if got := Instrument(next, ProviderTwilio, nil); got != Sender(next) {
		t.Fatalf("expected passthrough sender")
	}
}

func TestParseTwilioInbound(t *testing.T) {
	cb := ParseTwilioInbound(url.Values{
		"From":       {" whatsapp:+919000000001 "},
		"Body":       {"On my way"},
		"MessageSid": {"SM9"},
	})
	if cb.From != "whatsapp:+919000000001" || cb.Body != "On my way" || cb.MessageID != "SM9" {
		t.Fatalf("callback = %+v", cb)
	}
}

func TestParseMessageBirdInbound(t *testing.T) {
	cb := ParseMessageBirdInbound(url.Values{
		"originator": {"919000000001"},
		"payload":    {"Reaching in 5"},
		"recipient":  {"14155238886"},
		"id":         {"mb-in"},
	})
	if cb.From != "919000000001" || cb.Body != "Reaching in 5" || cb.MessageID != "mb-in" {
		t.Fatalf("callback = %+v", cb)
	}

	cb = ParseMessageBirdInbound(url.Values{"originator": {"919000000001"}, "body": {"fallback"}})
	if cb.Body != "fallback" {
		t.Fatalf("body fallback = %q", cb.Body)
	}
}

func TestInboundParserFor(t *testing.T) {
	form := url.Values{"originator": {"919000000001"}, "From": {"whatsapp:+1"}}
	if got := InboundParserFor(ProviderMessageBird)(form).From; got != "919000000001" {
		t.Fatalf("messagebird parser From = %q", got)
	}
	for _, provider := range []string{ProviderTwilio, "", "other"} {
		if got := InboundParserFor(provider)(form).From; got != "whatsapp:+1" {
			t.Fatalf("%q parser From = %q", provider, got)
		}
	}
}

func TestNormalizeSender(t *testing.T) {
	cases := []struct {
		channel, from, want string
	}{
		{"whatsapp", "919000000001", "whatsapp:+919000000001"},
		{"whatsapp", "+919000000001", "whatsapp:+919000000001"},
		{"whatsapp", "whatsapp:+919000000001", "whatsapp:+919000000001"},
		{"", "919000000001", "+919000000001"},
		{"whatsapp", "", ""},
	}
	for _, tc := range cases {
		got := NormalizeSender(tc.channel, models.InboundCallback{From: tc.from, Body: "x"})
		if got.From != tc.want || got.Body != "x" {
			t.Fatalf("NormalizeSender(%q, %q) = %+v want From %q", tc.channel, tc.from, got, tc.want)
		}
	}
}
