package services

import (
	"fmt"
	"strconv"
	"strings"

	"relay/internal/domain/models"
	"relay/internal/messaging"
)

// DriverReplyLabel prefixes every driver reply forwarded to a customer.
const DriverReplyLabel = "Message from your driver: "

// PaymentLink describes the payee used in online payment confirmations.
type PaymentLink struct {
	Scheme   string
	PayeeID  string
	AppName  string
	Currency string
}

// URI renders scheme://pay?pa=<payee>&pn=<app>&cu=<currency>. Values are
// inserted as configured; payment apps expect the raw VPA.
func (p PaymentLink) URI() string {
	scheme := p.Scheme
	if scheme == "" {
		scheme = "upi"
	}
	return fmt.Sprintf("%s://pay?pa=%s&pn=%s&cu=%s", scheme, p.PayeeID, p.AppName, p.Currency)
}

// MessageFormatter renders the customer confirmation and the driver alert.
type MessageFormatter struct {
	Payment PaymentLink
}

// FormatDuration gives "1hr" only for the number 1 and "<value>hrs" otherwise.
func FormatDuration(d models.Duration) string {
	if d.ExactlyOne() {
		return "1hr"
	}
	return d.String() + "hrs"
}

func (f MessageFormatter) appName() string {
	if f.Payment.AppName == "" {
		return "TrustnDrive"
	}
	return f.Payment.AppName
}

func (f MessageFormatter) CustomerMessage(req models.BookingRequest) string {
	app := f.appName()
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", req.Name)
	fmt.Fprintf(&b, "Your %s booking has been confirmed. Please review the details below.\n\n", app)
	b.WriteString("Booking Summary:\n")
	fmt.Fprintf(&b, "- Pickup Location: %s\n", req.Pickup)
	fmt.Fprintf(&b, "- Duration: %s\n\n", FormatDuration(req.Duration))

	if req.PaymentMethod == models.PaymentOnline {
		b.WriteString("To finalize your ride, please complete the payment using the link below or by entering the UPI ID in your payment app.\n")
		fmt.Fprintf(&b, "UPI Link: %s\n", f.Payment.URI())
		fmt.Fprintf(&b, "UPI ID: %s\n\n", f.Payment.PayeeID)
		fmt.Fprintf(&b, "A driver will be assigned to you shortly. Thank you for choosing %s.", app)
		return b.String()
	}

	b.WriteString("Payment Method: Pay with Cash\n")
	b.WriteString("Please have the payment ready for your driver upon trip completion.\n\n")
	fmt.Fprintf(&b, "A driver is being assigned and will arrive at your location shortly. Thank you for choosing %s.", app)
	return b.String()
}

func (f MessageFormatter) DriverMessage(req models.BookingRequest) string {
	var b strings.Builder
	b.WriteString("New Ride Alert!\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", req.Name)
	fmt.Fprintf(&b, "Phone: %s\n", messaging.DisplayNumber(req.Phone.String()))
	fmt.Fprintf(&b, "Pickup: %s\n", req.Pickup)
	fmt.Fprintf(&b, "Duration: %s", FormatDuration(req.Duration))

	if lat, lon, ok := req.Coordinates.LatLon(); ok {
		fmt.Fprintf(&b, "\nMap: https://www.google.com/maps?q=%s,%s",
			formatCoord(lat), formatCoord(lon))
	}
	return b.String()
}

// ForwardedReply is the body a customer receives for a driver's reply.
func ForwardedReply(body string) string {
	return DriverReplyLabel + body
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
