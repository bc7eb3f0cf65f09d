package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"relay/internal/domain/models"
	"relay/internal/messaging"
	"relay/internal/metrics"
	"relay/internal/repositories"
	"relay/internal/utils"
)

type ReplyOutcome string

const (
	// ReplyForwarded means a forward was started; its result is only logged.
	ReplyForwarded ReplyOutcome = "forwarded"
	ReplyNoMatch   ReplyOutcome = "no_match"
	// ReplyForwardFailed is recorded from the background forward only; Route
	// never returns it.
	ReplyForwardFailed ReplyOutcome = "forward_failed"
)

const defaultForwardTimeout = 15 * time.Second

// ReplyRouter forwards a driver's inbound message to the customer of the
// ride recorded for that driver. It never writes to the ride store.
type ReplyRouter struct {
	Sender         messaging.Sender
	Rides          repositories.RideStore
	SenderIdentity string
	Timeout        time.Duration
	Metrics        *metrics.Metrics

	wg sync.WaitGroup
}

// Route resolves the customer for cb.From and, on a match, forwards the
// labelled body in the background. It does not wait for the send.
func (r *ReplyRouter) Route(ctx context.Context, cb models.InboundCallback) ReplyOutcome {
	reqID := utils.RequestIDFrom(ctx)
	customer, ok, err := r.Rides.CustomerFor(ctx, cb.From)
	if err != nil {
		utils.LogEvent(reqID, "reply", "lookup", "failed: "+err.Error())
		ok = false
	}
	if !ok {
		r.Metrics.Reply(string(ReplyNoMatch))
		utils.LogEvent(reqID, "reply", "route", fmt.Sprintf("from=%s no active ride", utils.MaskIdentity(cb.From)))
		return ReplyNoMatch
	}

	msg := models.OutboundMessage{
		From: r.SenderIdentity,
		To:   customer,
		Body: ForwardedReply(cb.Body),
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultForwardTimeout
	}
	fwdCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		id, err := r.Sender.Send(fwdCtx, msg)
		if err != nil {
			r.Metrics.Reply(string(ReplyForwardFailed))
			utils.LogEvent(reqID, "reply", "forward", fmt.Sprintf("to=%s failed: %v", utils.MaskIdentity(customer), err))
			return
		}
		r.Metrics.Reply(string(ReplyForwarded))
		utils.LogEvent(reqID, "reply", "forward", fmt.Sprintf("to=%s sid=%s", utils.MaskIdentity(customer), id))
	}()
	return ReplyForwarded
}

// Wait blocks until every forward started by Route has finished.
func (r *ReplyRouter) Wait() {
	r.wg.Wait()
}
