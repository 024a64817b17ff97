package contract

import (
	"context"

	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
	"github.com/lite-lake/mijnhost-dns/internal/domain/valueobject"
)

// DNSAPI is the provider surface the use cases depend on. Every method
// performs exactly one remote call.
type DNSAPI interface {
	ListDomains(ctx context.Context) ([]entity.Domain, error)
	GetRecords(ctx context.Context, domain string) (*entity.RecordSet, error)
	ReplaceRecords(ctx context.Context, domain string, records []entity.DNSRecord) (*valueobject.APIStatus, error)
	PatchRecord(ctx context.Context, domain string, record entity.DNSRecord) (*valueobject.APIStatus, error)
}
