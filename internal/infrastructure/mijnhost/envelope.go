package mijnhost

import (
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
	"github.com/lite-lake/mijnhost-dns/internal/domain/valueobject"
)

// Envelope is the wrapper every read response comes in. Data is a pointer
// so that a missing or null payload can be told apart from an empty one.
type Envelope[T any] struct {
	valueobject.APIStatus
	Data *T `json:"data"`
}

type domainsData struct {
	Domains []entity.Domain `json:"domains"`
}

type recordsData struct {
	Domain  string             `json:"domain,omitempty"`
	Records []entity.DNSRecord `json:"records"`
}

type replaceRecordsRequest struct {
	Records []entity.DNSRecord `json:"records"`
}

type patchRecordRequest struct {
	Record entity.DNSRecord `json:"record"`
}
