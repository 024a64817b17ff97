package entity

import (
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

// RecordSet is the full list of records for one domain in provider order.
type RecordSet struct {
	Domain  string      `json:"domain" yaml:"domain"`
	Records []DNSRecord `json:"records" yaml:"records"`
}

func IsChallengeRecord(r DNSRecord) bool {
	return strings.HasPrefix(r.Name, domain.ChallengeRecordName)
}

// FindChallenge returns the first record whose name starts with
// _acme-challenge. Provider-appended labels such as
// "_acme-challenge.example.com." still match.
func (s *RecordSet) FindChallenge() (DNSRecord, bool) {
	if s == nil {
		return DNSRecord{}, false
	}
	return lo.Find(s.Records, IsChallengeRecord)
}

func (s *RecordSet) ChallengeRecords() []DNSRecord {
	if s == nil {
		return nil
	}
	return lo.Filter(s.Records, func(r DNSRecord, _ int) bool {
		return IsChallengeRecord(r)
	})
}

func (s *RecordSet) Validate() error {
	for i, r := range s.Records {
		if err := r.Validate(); err != nil {
			return domain.WrapEntity("records", strconv.Itoa(i), err)
		}
	}
	return nil
}
