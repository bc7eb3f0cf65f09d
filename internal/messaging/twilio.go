package messaging

import (
	"context"
	"errors"
	"fmt"

	"relay/internal/domain/models"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/twilio/twilio-go/twiml"
)

const ProviderTwilio = "twilio"

// emptyTwiML is served if the twiml encoder ever fails; Twilio only needs an
// empty <Response/> to stop retrying the callback.
const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender sends through the Programmable Messaging REST API. WhatsApp
// and SMS differ only by the identity prefix.
type TwilioSender struct {
	api messageCreator
}

func NewTwilioSender(accountSID, authToken string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api}
}

func (s *TwilioSender) Send(ctx context.Context, msg models.OutboundMessage) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	params := &openapi.CreateMessageParams{}
	params.SetFrom(msg.From)
	params.SetTo(msg.To)
	params.SetBody(msg.Body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio create message: %w", err)
	}
	if resp == nil || resp.Sid == nil {
		return "", errors.New("twilio create message: empty response")
	}
	return *resp.Sid, nil
}

// EmptyResponse is the acknowledgment body for an inbound message webhook.
func EmptyResponse() string {
	doc, err := twiml.Messages(nil)
	if err != nil || doc == "" {
		return emptyTwiML
	}
	return doc
}
