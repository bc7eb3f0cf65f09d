package messaging

import (
	"net/url"
	"strings"

	"relay/internal/domain/models"
)

// InboundParser reads a provider's inbound message webhook fields.
type InboundParser func(form url.Values) models.InboundCallback

// ParseTwilioInbound reads From/Body/MessageSid. Twilio already sends the
// channel-prefixed identity ("whatsapp:+91...").
func ParseTwilioInbound(form url.Values) models.InboundCallback {
	return models.InboundCallback{
		From:      strings.TrimSpace(form.Get("From")),
		Body:      form.Get("Body"),
		MessageID: form.Get("MessageSid"),
	}
}

// ParseMessageBirdInbound reads originator/payload/id. The originator is a
// bare MSISDN ("919000000001").
func ParseMessageBirdInbound(form url.Values) models.InboundCallback {
	body := form.Get("payload")
	if body == "" {
		body = form.Get("body")
	}
	return models.InboundCallback{
		From:      strings.TrimSpace(form.Get("originator")),
		Body:      body,
		MessageID: form.Get("id"),
	}
}

// InboundParserFor picks the parser for provider; unknown names get Twilio's.
func InboundParserFor(provider string) InboundParser {
	if provider == ProviderMessageBird {
		return ParseMessageBirdInbound
	}
	return ParseTwilioInbound
}

// NormalizeSender maps a parsed sender onto the identity form used when the
// ride was recorded, so MSISDNs and prefixed identities compare equal.
func NormalizeSender(channel string, cb models.InboundCallback) models.InboundCallback {
	cb.From = Identity(channel, cb.From)
	return cb
}
