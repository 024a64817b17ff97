package valueobject

import (
	"fmt"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

// APIStatus is the {status, statusDescription} pair the provider puts in
// every response body.
type APIStatus struct {
	Status            int    `json:"status"`
	StatusDescription string `json:"statusDescription"`
}

func (s APIStatus) OK() bool {
	return s.Status == domain.StatusOK
}

func (s APIStatus) String() string {
	return fmt.Sprintf("%d - %s", s.Status, s.StatusDescription)
}
