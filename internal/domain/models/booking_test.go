package models

import (
	"encoding/json"
	"testing"
)

func TestDurationKeepsRawValue(t *testing.T) {
	cases := []struct {
		body    string
		missing bool
		text    string
		one     bool
	}{
		{`{"duration":2}`, false, "2", false},
		{`{"duration":1}`, false, "1", true},
		{`{"duration":1.5}`, false, "1.5", false},
		{`{"duration":"1"}`, false, "1", false},
		{`{"duration":"0"}`, false, "0", false},
		{`{"duration":"2 hours"}`, false, "2 hours", false},
		{`{"duration":true}`, false, "true", false},
		{`{"duration":0}`, true, "0", false},
		{`{"duration":""}`, true, "", false},
		{`{"duration":false}`, true, "", false},
		{`{"duration":null}`, true, "", false},
		{`{}`, true, "", false},
	}
	for _, tc := range cases {
		var req BookingRequest
		if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.body, err)
		}
		if req.Duration.Missing() != tc.missing {
			t.Fatalf("%s: missing = %v", tc.body, req.Duration.Missing())
		}
		if req.Duration.String() != tc.text {
			t.Fatalf("%s: text = %q want %q", tc.body, req.Duration.String(), tc.text)
		}
		if req.Duration.ExactlyOne() != tc.one {
			t.Fatalf("%s: exactly one = %v", tc.body, req.Duration.ExactlyOne())
		}
	}
}

func TestPhoneAcceptsNumber(t *testing.T) {
	var req BookingRequest
	if err := json.Unmarshal([]byte(`{"phone":919876543210}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Phone.String() != "919876543210" {
		t.Fatalf("phone = %q", req.Phone)
	}

	req = BookingRequest{}
	if err := json.Unmarshal([]byte(`{"phone":"+919876543210"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Phone != "+919876543210" {
		t.Fatalf("phone = %q", req.Phone)
	}
}

func TestCoordinatesLatLon(t *testing.T) {
	var req BookingRequest
	if err := json.Unmarshal([]byte(`{"coordinates":{"lat":12.97,"lon":77.59}}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	lat, lon, ok := req.Coordinates.LatLon()
	if !ok || lat != 12.97 || lon != 77.59 {
		t.Fatalf("got %v %v %v", lat, lon, ok)
	}

	req = BookingRequest{}
	if err := json.Unmarshal([]byte(`{"coordinates":{"lat":12.97}}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, _, ok := req.Coordinates.LatLon(); ok {
		t.Fatalf("partial coordinates reported as present")
	}

	req = BookingRequest{}
	if _, _, ok := req.Coordinates.LatLon(); ok {
		t.Fatalf("nil coordinates reported as present")
	}

	req = BookingRequest{}
	if err := json.Unmarshal([]byte(`{"coordinates":{"lat":0,"lng":0}}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, _, ok := req.Coordinates.LatLon(); !ok {
		t.Fatalf("zero coordinates with lng should be present")
	}
}
