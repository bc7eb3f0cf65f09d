package handlers

import (
	"context"
	"net/http"

	"relay/internal/domain/models"
	"relay/internal/http/middleware"
	"relay/internal/messaging"
	"relay/internal/services"
	"relay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Router is satisfied by *services.ReplyRouter.
type Router interface {
	Route(ctx context.Context, cb models.InboundCallback) services.ReplyOutcome
}

// IncomingMessage handles the provider's inbound message webhook. Fields are
// read from the query string and the form body with parse, and the sender is
// normalised to channel identities before lookup. It always answers 200 with
// an empty TwiML document: any other status makes the provider retry.
func IncomingMessage(router Router, parse messaging.InboundParser, channel string) gin.HandlerFunc {
	if parse == nil {
		parse = messaging.ParseTwilioInbound
	}
	ack := []byte(messaging.EmptyResponse())

	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			utils.LogEvent(middleware.GetRequestID(c), "reply", "parse", "invalid form: "+err.Error())
		}
		cb := messaging.NormalizeSender(channel, parse(c.Request.Form))
		router.Route(c.Request.Context(), cb)

		c.Data(http.StatusOK, "text/xml", ack)
	}
}
