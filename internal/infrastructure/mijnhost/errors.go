package mijnhost

import (
	"encoding/json"
	"fmt"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
	"github.com/lite-lake/mijnhost-dns/internal/domain/valueobject"
)

const (
	unknownStatus            = -1
	unknownStatusDescription = "Unknown error"
)

// APIError is returned when the provider answers with a non-2xx HTTP status,
// or with a non-200 API status on a read. RawBody keeps the unparsed
// response for diagnostics.
type APIError struct {
	HTTPStatus        int
	Status            int
	StatusDescription string
	RawBody           string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("DNS API error %d: %s (HTTP %d)", e.Status, e.StatusDescription, e.HTTPStatus)
}

func (e *APIError) Is(target error) bool {
	return target == domain.ErrAPIStatus
}

// newAPIError classifies a failed response. Bodies that are not a
// {status, statusDescription} object collapse to status -1.
func newAPIError(httpStatus int, raw []byte) *APIError {
	status := valueobject.APIStatus{Status: unknownStatus, StatusDescription: unknownStatusDescription}

	var parsed *valueobject.APIStatus
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed != nil {
		status = *parsed
	}

	return &APIError{
		HTTPStatus:        httpStatus,
		Status:            status.Status,
		StatusDescription: status.StatusDescription,
		RawBody:           string(raw),
	}
}

func malformed(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrMalformedResponse, err)
}
