package services

import (
	"context"
	"fmt"
	"strings"

	"relay/internal/domain"
	"relay/internal/domain/models"
	"relay/internal/messaging"
	"relay/internal/metrics"
	"relay/internal/repositories"
	"relay/internal/utils"

	"golang.org/x/sync/errgroup"
)

// MsgFieldsRequired is the only validation text returned to callers.
const MsgFieldsRequired = "All fields are required."

type BookingService struct {
	Sender    messaging.Sender
	Rides     repositories.RideStore
	Formatter MessageFormatter
	Metrics   *metrics.Metrics

	// Channel prefixes the customer's phone to build their identity.
	Channel        string
	SenderIdentity string
	DriverIdentity string
}

// BookingResult carries provider ids for logging; callers get no detail
// beyond success.
type BookingResult struct {
	CustomerIdentity  string
	CustomerMessageID string
	DriverMessageID   string
}

func validateBooking(req models.BookingRequest) error {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return domain.ValidationError{Field: "name", Msg: MsgFieldsRequired}
	case strings.TrimSpace(req.Phone.String()) == "":
		return domain.ValidationError{Field: "phone", Msg: MsgFieldsRequired}
	case strings.TrimSpace(req.Pickup) == "":
		return domain.ValidationError{Field: "pickup", Msg: MsgFieldsRequired}
	case req.Duration.Missing():
		return domain.ValidationError{Field: "duration", Msg: MsgFieldsRequired}
	}
	return nil
}

// Book validates req, records the ride for reply routing, then sends the
// customer confirmation and the driver alert concurrently. The ride is
// recorded before either send completes and is kept even if a send fails.
func (s BookingService) Book(ctx context.Context, req models.BookingRequest) (BookingResult, error) {
	reqID := utils.RequestIDFrom(ctx)
	if err := validateBooking(req); err != nil {
		s.Metrics.Booking("invalid")
		utils.LogEvent(reqID, "booking", "validate", err.Error())
		return BookingResult{}, err
	}

	customer := messaging.Identity(s.Channel, req.Phone.String())
	customerMsg := models.OutboundMessage{
		From: s.SenderIdentity,
		To:   customer,
		Body: s.Formatter.CustomerMessage(req),
	}
	driverMsg := models.OutboundMessage{
		From: s.SenderIdentity,
		To:   s.DriverIdentity,
		Body: s.Formatter.DriverMessage(req),
	}

	if err := s.Rides.Save(ctx, models.ActiveRide{
		CustomerIdentity: customer,
		DriverIdentity:   s.DriverIdentity,
	}); err != nil {
		utils.LogEvent(reqID, "booking", "record_ride", "failed: "+err.Error())
	}

	// Sends outlive a disconnected client; both are always attempted.
	sendCtx := context.WithoutCancel(ctx)
	res := BookingResult{CustomerIdentity: customer}
	var g errgroup.Group
	g.Go(func() error {
		id, err := s.Sender.Send(sendCtx, customerMsg)
		if err != nil {
			utils.LogEvent(reqID, "booking", "send_customer", fmt.Sprintf("to=%s failed: %v", utils.MaskIdentity(customer), err))
			return err
		}
		res.CustomerMessageID = id
		return nil
	})
	g.Go(func() error {
		id, err := s.Sender.Send(sendCtx, driverMsg)
		if err != nil {
			utils.LogEvent(reqID, "booking", "send_driver", fmt.Sprintf("to=%s failed: %v", utils.MaskIdentity(s.DriverIdentity), err))
			return err
		}
		res.DriverMessageID = id
		return nil
	})
	if err := g.Wait(); err != nil {
		s.Metrics.Booking("dispatch_failed")
		return BookingResult{}, domain.DispatchError{Msg: "failed to send confirmation message", Err: err}
	}

	s.Metrics.Booking("ok")
	utils.LogEvent(reqID, "booking", "dispatch", fmt.Sprintf("customer=%s customer_sid=%s driver_sid=%s",
		utils.MaskIdentity(customer), res.CustomerMessageID, res.DriverMessageID))
	return res, nil
}
