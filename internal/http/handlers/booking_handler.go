package handlers

import (
	"context"
	"fmt"
	"net/http"

	"relay/internal/domain/models"
	"relay/internal/http/middleware"
	"relay/internal/services"
	"relay/internal/utils"

	"github.com/gin-gonic/gin"
)

const msgBookingConfirmed = "Booking confirmed! Check your WhatsApp."

// Booker is satisfied by services.BookingService.
type Booker interface {
	Book(ctx context.Context, req models.BookingRequest) (services.BookingResult, error)
}

// BookRide handles POST /api/book-ride.
func BookRide(svc Booker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookingRequest
		if !BindJSONOrError(c, &req, services.MsgFieldsRequired) {
			return
		}

		utils.LogEvent(middleware.GetRequestID(c), "booking", "received",
			fmt.Sprintf("phone=%s payment=%q", utils.MaskIdentity(req.Phone.String()), req.PaymentMethod))

		if _, err := svc.Book(c.Request.Context(), req); err != nil {
			RespondDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": msgBookingConfirmed,
		})
	}
}
