package entity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
)

// Domain is an account-owned domain as listed by the provider. The CLI
// never creates or deletes domains.
type Domain struct {
	ID          int64    `json:"id" yaml:"id"`
	Domain      string   `json:"domain" yaml:"domain"`
	RenewalDate string   `json:"renewalDate,omitempty" yaml:"renewal_date,omitempty"`
	Status      string   `json:"status,omitempty" yaml:"status,omitempty"`
	StatusID    int      `json:"statusId,omitempty" yaml:"status_id,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

var domainRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// ValidateDomainName rejects names that cannot be a registrable domain.
// It is used on CLI input only; names returned by the provider are trusted.
func ValidateDomainName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: domain name is required", domain.ErrInvalidDomain)
	}
	if !domainRegex.MatchString(strings.TrimSuffix(name, ".")) {
		return fmt.Errorf("%w: invalid domain format %s", domain.ErrInvalidDomain, name)
	}
	return nil
}

// ChallengeTarget returns the CNAME target for a domain's _acme-challenge
// record: "<domain>.<suffix>" with exactly one trailing dot.
func ChallengeTarget(domainName, suffix string) string {
	if suffix == "" {
		suffix = domain.DefaultChallengeTarget
	}
	suffix = strings.TrimPrefix(suffix, ".")
	if !strings.HasSuffix(suffix, ".") {
		suffix += "."
	}
	return strings.TrimSuffix(domainName, ".") + "." + suffix
}
