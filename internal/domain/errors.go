package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidDomain = errors.New("invalid domain")
	ErrInvalidTTL    = errors.New("invalid TTL")
	ErrInvalidType   = errors.New("invalid type")
	ErrEmptyValue    = errors.New("empty value")
	ErrRequired      = errors.New("required field missing")
	ErrMissingSecret = errors.New("missing secret reference")

	ErrMissingAPIKey     = errors.New("missing API key")
	ErrAPIStatus         = errors.New("API returned an error status")
	ErrMalformedResponse = errors.New("malformed API response")

	ErrConfigNotLoaded    = errors.New("config not loaded")
	ErrConfigReadFailed   = errors.New("config read failed")
	ErrConfigParseFailed  = errors.New("config parse failed")
	ErrConfigValidateFail = errors.New("config validation failed")
	ErrConfigNotFound     = errors.New("config not found")

	ErrLockHeld = errors.New("another run holds the lock")
)

func RequiredField(field string) error {
	return fmt.Errorf("%w: %s", ErrRequired, field)
}

func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func WrapEntity(entity, name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s[%s]: %w", entity, name, err)
}
