package entity

import (
	"fmt"
	"strings"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

type DNSRecordType string

const (
	DNSRecordTypeA     DNSRecordType = "A"
	DNSRecordTypeAAAA  DNSRecordType = "AAAA"
	DNSRecordTypeCNAME DNSRecordType = "CNAME"
	DNSRecordTypeMX    DNSRecordType = "MX"
	DNSRecordTypeTXT   DNSRecordType = "TXT"
	DNSRecordTypeNS    DNSRecordType = "NS"
	DNSRecordTypeSRV   DNSRecordType = "SRV"
	DNSRecordTypeCAA   DNSRecordType = "CAA"
)

var validRecordTypes = map[DNSRecordType]bool{
	DNSRecordTypeA:     true,
	DNSRecordTypeAAAA:  true,
	DNSRecordTypeCNAME: true,
	DNSRecordTypeMX:    true,
	DNSRecordTypeTXT:   true,
	DNSRecordTypeNS:    true,
	DNSRecordTypeSRV:   true,
	DNSRecordTypeCAA:   true,
}

// DNSRecord is a single resource record as exchanged with the provider.
// It is a value type; build a new one instead of editing a received record.
type DNSRecord struct {
	Name  string        `json:"name" yaml:"name"`
	Type  DNSRecordType `json:"type" yaml:"type"`
	Value string        `json:"value" yaml:"value"`
	TTL   int           `json:"ttl" yaml:"ttl"`
}

func NewDNSRecord(name string, recordType DNSRecordType, value string) DNSRecord {
	return DNSRecord{
		Name:  name,
		Type:  recordType,
		Value: value,
		TTL:   domain.DefaultRecordTTL,
	}
}

// NewChallengeRecord builds the _acme-challenge record used for ACME
// validation, with the short TTL the provider expects for it.
func NewChallengeRecord(recordType DNSRecordType, value string) DNSRecord {
	return DNSRecord{
		Name:  domain.ChallengeRecordName,
		Type:  recordType,
		Value: value,
		TTL:   domain.ChallengeRecordTTL,
	}
}

func (r DNSRecord) Validate() error {
	if !validRecordTypes[r.Type] {
		return fmt.Errorf("%w: dns record type %s", domain.ErrInvalidType, r.Type)
	}
	if r.Name == "" {
		return domain.RequiredField("name")
	}
	if strings.ContainsAny(r.Name, " \t\r\n") {
		return fmt.Errorf("%w: dns record name %q contains whitespace", domain.ErrInvalidName, r.Name)
	}
	if r.Value == "" {
		return domain.RequiredField("value")
	}
	if r.TTL < 0 {
		return fmt.Errorf("%w: ttl must be non-negative", domain.ErrInvalidTTL)
	}
	return nil
}

func (r DNSRecord) String() string {
	return fmt.Sprintf("%s %d %s %s", r.Name, r.TTL, r.Type, r.Value)
}

func ParseRecordType(s string) (DNSRecordType, error) {
	t := DNSRecordType(s)
	if !validRecordTypes[t] {
		return "", fmt.Errorf("%w: dns record type %s", domain.ErrInvalidType, s)
	}
	return t, nil
}
