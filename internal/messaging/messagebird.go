package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"relay/internal/domain/models"

	messagebird "github.com/messagebird/go-rest-api/v9"
	"github.com/messagebird/go-rest-api/v9/sms"
)

const ProviderMessageBird = "messagebird"

type smsCreateFunc func(originator string, recipients []string, body string) (*sms.Message, error)

// MessageBirdSender sends plain SMS. Channel prefixes are dropped and
// numbers are passed as MSISDNs without the leading "+".
type MessageBirdSender struct {
	create smsCreateFunc
}

func NewMessageBirdSender(accessKey string) *MessageBirdSender {
	client := messagebird.New(accessKey)
	return &MessageBirdSender{
		create: func(originator string, recipients []string, body string) (*sms.Message, error) {
			return sms.Create(client, originator, recipients, body, nil)
		},
	}
}

func msisdn(identity string) string {
	return strings.TrimPrefix(Address(identity), "+")
}

func (s *MessageBirdSender) Send(ctx context.Context, msg models.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	to := msisdn(msg.To)
	if to == "" {
		return "", errors.New("messagebird: empty recipient")
	}
	resp, err := s.create(msisdn(msg.From), []string{to}, msg.Body)
	if err != nil {
		return "", fmt.Errorf("messagebird create sms: %w", err)
	}
	if resp == nil {
		return "", errors.New("messagebird create sms: empty response")
	}
	return resp.ID, nil
}
