package mijnhost

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
	"github.com/lite-lake/mijnhost-dns/internal/domain/contract"
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
	"github.com/lite-lake/mijnhost-dns/internal/domain/valueobject"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/logger"
)

const (
	opListDomains    = "GET domains/"
	opGetRecords     = "GET domains/{domain}/dns"
	opReplaceRecords = "PUT domains/{domain}/dns"
	opPatchRecord    = "PATCH domains/{domain}/dns"
)

// Client talks to the mijn.host v2 DNS API. It keeps no state between
// calls and may be shared by goroutines.
type Client struct {
	t *transport
}

var _ contract.DNSAPI = (*Client)(nil)

func New(apiKey string, opts ...Option) (*Client, error) {
	t, err := newTransport(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{t: t}, nil
}

// DNSPath returns the API path of a domain's DNS sub-resource with the
// domain percent-encoded as one path segment.
func DNSPath(domainName string) string {
	return "domains/" + url.PathEscape(domainName) + "/dns"
}

func (c *Client) ListDomains(ctx context.Context) ([]entity.Domain, error) {
	var env Envelope[domainsData]
	err := logger.TimedOperation(ctx, opListDomains, func() error {
		res, err := c.t.do(ctx, http.MethodGet, "domains/", nil, &env)
		if err != nil {
			return err
		}
		return checkEnvelope(opListDomains, res, env.APIStatus, env.Data != nil)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("listed domains", "count", len(env.Data.Domains))
	return env.Data.Domains, nil
}

func (c *Client) GetRecords(ctx context.Context, domainName string) (*entity.RecordSet, error) {
	if domainName == "" {
		return nil, domain.RequiredField("domain")
	}

	var env Envelope[recordsData]
	err := logger.TimedOperation(ctx, opGetRecords, func() error {
		res, err := c.t.do(ctx, http.MethodGet, DNSPath(domainName), nil, &env)
		if err != nil {
			return err
		}
		return checkEnvelope(opGetRecords, res, env.APIStatus, env.Data != nil)
	})
	if err != nil {
		return nil, err
	}

	set := &entity.RecordSet{Domain: env.Data.Domain, Records: env.Data.Records}
	if set.Domain == "" {
		set.Domain = domainName
	}
	logger.FromContext(ctx).Debug("listed DNS records", "domain", domainName, "count", len(set.Records))
	return set, nil
}

// ReplaceRecords overwrites the domain's entire record set.
func (c *Client) ReplaceRecords(ctx context.Context, domainName string, records []entity.DNSRecord) (*valueobject.APIStatus, error) {
	if domainName == "" {
		return nil, domain.RequiredField("domain")
	}
	if records == nil {
		records = []entity.DNSRecord{}
	}

	var status valueobject.APIStatus
	err := logger.TimedOperation(ctx, opReplaceRecords, func() error {
		_, err := c.t.do(ctx, http.MethodPut, DNSPath(domainName), replaceRecordsRequest{Records: records}, &status)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("DNS records replaced", "domain", domainName, "count", len(records), "status", status.Status)
	return &status, nil
}

// PatchRecord creates the record, or updates the existing record with the
// same name and type.
func (c *Client) PatchRecord(ctx context.Context, domainName string, record entity.DNSRecord) (*valueobject.APIStatus, error) {
	if domainName == "" {
		return nil, domain.RequiredField("domain")
	}

	var status valueobject.APIStatus
	err := logger.TimedOperation(ctx, opPatchRecord, func() error {
		_, err := c.t.do(ctx, http.MethodPatch, DNSPath(domainName), patchRecordRequest{Record: record}, &status)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("DNS record patched", "domain", domainName, "name", record.Name, "type", record.Type, "status", status.Status)
	return &status, nil
}

// checkEnvelope rejects reads whose body carries no data. A non-200 API
// status on a 2xx read is reported as an APIError without an HTTP failure.
func checkEnvelope(op string, res *rawResponse, status valueobject.APIStatus, hasData bool) error {
	if status.Status != 0 && !status.OK() {
		return &APIError{
			HTTPStatus:        res.StatusCode,
			Status:            status.Status,
			StatusDescription: status.StatusDescription,
			RawBody:           string(res.Body),
		}
	}
	if !hasData {
		return malformed(op, errors.New("missing data"))
	}
	return nil
}
