package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a booking request that is missing required fields.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// DispatchError means one or more outbound sends failed. Which send failed is
// not part of the message; only Err carries the provider cause.
type DispatchError struct {
	Msg string
	Err error
}

func (e DispatchError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "dispatch failed"
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e DispatchError) Unwrap() error { return e.Err }

// ConfigError lists required configuration that is missing or invalid.
type ConfigError struct {
	Missing []string
	Msg     string
}

func (e ConfigError) Error() string {
	switch {
	case len(e.Missing) > 0 && e.Msg != "":
		return fmt.Sprintf("config: %s (missing %s)", e.Msg, strings.Join(e.Missing, ", "))
	case len(e.Missing) > 0:
		return fmt.Sprintf("config: missing %s", strings.Join(e.Missing, ", "))
	case e.Msg != "":
		return "config: " + e.Msg
	default:
		return "config error"
	}
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsDispatch(err error) bool {
	var target DispatchError
	return errors.As(err, &target)
}

func IsConfig(err error) bool {
	var target ConfigError
	return errors.As(err, &target)
}
