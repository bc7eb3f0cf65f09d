package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PaymentMethod is taken as sent; only PaymentOnline selects the payment link.
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "Online"
	PaymentCash   PaymentMethod = "Cash"
)

// Stringish tolerates string/number/bool and keeps it as text, so a phone
// sent as a JSON number still binds.
type Stringish string

func (s *Stringish) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case string(b) == "null" || len(b) == 0:
		*s = ""
		return nil
	case len(b) >= 2 && b[0] == '"' && b[len(b)-1] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Stringish(str)
		return nil
	default:
		*s = Stringish(strings.Trim(string(b), `"`))
		return nil
	}
}

func (s Stringish) String() string { return string(s) }

// Duration keeps the requested hours as sent. Strings are used verbatim;
// only absent, null, "", 0 and false count as missing.
type Duration struct {
	raw      string
	number   float64
	isNumber bool
	present  bool
}

// NumberDuration is the value a JSON number decodes to.
func NumberDuration(v float64) Duration {
	return Duration{raw: strconv.FormatFloat(v, 'f', -1, 64), number: v, isNumber: true, present: v != 0}
}

// TextDuration is the value a JSON string decodes to.
func TextDuration(s string) Duration {
	return Duration{raw: s, present: s != ""}
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null" || string(b) == "false":
		*d = Duration{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = TextDuration(s)
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			// true, objects and arrays are interpolated as their JSON text.
			*d = Duration{raw: string(b), present: true}
			return nil
		}
		*d = NumberDuration(v)
	}
	return nil
}

// Missing reports an absent or falsy duration.
func (d Duration) Missing() bool { return !d.present }

// ExactlyOne is true only for the JSON number 1, not the string "1".
func (d Duration) ExactlyOne() bool { return d.isNumber && d.number == 1 }

// String renders numbers without trailing zeros (2 -> "2") and strings as sent.
func (d Duration) String() string { return d.raw }

// Coordinates are optional on a booking; either half may be missing.
type Coordinates struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
	Lng *float64 `json:"lng,omitempty"`
}

// LatLon reports both values only when lat and lon (or lng) are present.
func (c *Coordinates) LatLon() (float64, float64, bool) {
	if c == nil || c.Lat == nil {
		return 0, 0, false
	}
	lon := c.Lon
	if lon == nil {
		lon = c.Lng
	}
	if lon == nil {
		return 0, 0, false
	}
	return *c.Lat, *lon, true
}

// BookingRequest is the body of POST /api/book-ride.
type BookingRequest struct {
	Name          string        `json:"name"`
	Phone         Stringish     `json:"phone"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Pickup        string        `json:"pickup"`
	Duration      Duration      `json:"duration"`
	Coordinates   *Coordinates  `json:"coordinates,omitempty"`
}

// ActiveRide links the driver who may reply to the customer who receives it.
type ActiveRide struct {
	CustomerIdentity string
	DriverIdentity   string
}

// OutboundMessage is handed to a provider sender and never stored.
type OutboundMessage struct {
	From string
	To   string
	Body string
}

// InboundCallback is the part of a provider webhook the relay reads.
type InboundCallback struct {
	From      string
	Body      string
	MessageID string
}
