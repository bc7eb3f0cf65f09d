package messaging

import (
	"context"
	"strings"

	"relay/internal/domain/models"
)

// Sender submits one message to the provider and returns the provider's
// message id. Implementations do not retry.
type Sender interface {
	Send(ctx context.Context, msg models.OutboundMessage) (string, error)
}

// Identity builds a provider address for a phone number on a channel:
// Identity("whatsapp", "919876543210") -> "whatsapp:+919876543210".
// An empty channel yields the bare E.164 number. Input that already carries
// a channel prefix is returned trimmed.
func Identity(channel, phone string) string {
	phone = strings.Join(strings.Fields(phone), "")
	if phone == "" {
		return ""
	}
	if strings.Contains(phone, ":") {
		return phone
	}
	number := "+" + strings.TrimPrefix(phone, "+")
	if channel == "" {
		return number
	}
	return channel + ":" + number
}

// Address strips the channel prefix: "whatsapp:+9198" -> "+9198".
func Address(identity string) string {
	identity = strings.TrimSpace(identity)
	if i := strings.LastIndex(identity, ":"); i >= 0 {
		return identity[i+1:]
	}
	return identity
}

// DisplayNumber is the "+"-prefixed number shown inside message text.
func DisplayNumber(phone string) string {
	return "+" + strings.TrimPrefix(Address(strings.Join(strings.Fields(phone), "")), "+")
}
