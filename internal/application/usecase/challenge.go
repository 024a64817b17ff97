package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
	"github.com/lite-lake/mijnhost-dns/internal/domain/contract"
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
	"github.com/lite-lake/mijnhost-dns/internal/domain/valueobject"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/logger"
)

type Outcome string

const (
	OutcomeExisting    Outcome = "existing"
	OutcomeCreated     Outcome = "created"
	OutcomeWouldCreate Outcome = "would create"
	OutcomeFailed      Outcome = "failed"
	OutcomeSkipped     Outcome = "skipped"
)

// DomainResult is the outcome of one domain in a check-all pass. Record is
// the existing challenge record, or the one created (or that would be).
type DomainResult struct {
	Domain     string
	Outcome    Outcome
	Record     entity.DNSRecord
	Status     *valueobject.APIStatus
	Duplicates int
	Err        error
}

type Report struct {
	Results []DomainResult
}

func (r *Report) Count(o Outcome) int {
	return lo.CountBy(r.Results, func(res DomainResult) bool {
		return res.Outcome == o
	})
}

func (r *Report) HasFailures() bool {
	return r.Count(OutcomeFailed) > 0
}

type ReconcilerConfig struct {
	// ChallengeTarget is the suffix appended to the domain to form the
	// CNAME target. Defaults to acme.certservice.nl.
	ChallengeTarget string
	// Concurrency bounds how many domains are processed at once. Values
	// below 2 mean sequential processing in API order.
	Concurrency int
	DryRun      bool
	// OnResult, when set, is called once per finished domain. Calls are
	// serialized.
	OnResult func(DomainResult)
}

// ChallengeReconciler makes sure every domain of the account carries an
// _acme-challenge record. Domains that already have one are never touched.
type ChallengeReconciler struct {
	api    contract.DNSAPI
	cfg    ReconcilerConfig
	emitMu sync.Mutex
}

func NewChallengeReconciler(api contract.DNSAPI, cfg *ReconcilerConfig) *ChallengeReconciler {
	r := &ChallengeReconciler{api: api}
	if cfg != nil {
		r.cfg = *cfg
	}
	if r.cfg.ChallengeTarget == "" {
		r.cfg.ChallengeTarget = domain.DefaultChallengeTarget
	}
	if r.cfg.Concurrency < 1 {
		r.cfg.Concurrency = 1
	}
	return r
}

// CheckAll runs one reconciliation pass over all domains. Only a failure
// to list domains aborts the pass; per-domain failures are recorded in the
// report. When ctx is cancelled no new domain is started, the remaining
// ones are reported as skipped and the context error is returned with the
// partial report.
func (r *ChallengeReconciler) CheckAll(ctx context.Context) (*Report, error) {
	ctx = logger.WithOperation(ctx, "checkall")
	log := logger.FromContext(ctx)

	domains, err := r.api.ListDomains(ctx)
	if err != nil {
		return nil, domain.WrapOp("list domains", err)
	}
	log.Info("starting check-all", "domains", len(domains), "concurrency", r.cfg.Concurrency, "dry_run", r.cfg.DryRun)

	report := &Report{
		Results: lo.Map(domains, func(d entity.Domain, _ int) DomainResult {
			return DomainResult{Domain: d.Domain, Outcome: OutcomeSkipped}
		}),
	}

	g := new(errgroup.Group)
	g.SetLimit(r.cfg.Concurrency)
	for i, d := range domains {
		if ctx.Err() != nil {
			break
		}
		i, d := i, d
		g.Go(func() error {
			res := r.EnsureChallenge(ctx, d.Domain)
			report.Results[i] = res
			r.emit(res)
			return nil
		})
	}
	_ = g.Wait()

	log.Info("check-all finished",
		"existing", report.Count(OutcomeExisting),
		"created", report.Count(OutcomeCreated),
		"would_create", report.Count(OutcomeWouldCreate),
		"failed", report.Count(OutcomeFailed),
		"skipped", report.Count(OutcomeSkipped),
	)

	if err := ctx.Err(); err != nil {
		return report, domain.WrapOp("check-all", err)
	}
	return report, nil
}

// EnsureChallenge is the per-domain step of CheckAll. It reads the record
// set, reports an existing _acme-challenge record as is, and otherwise
// upserts a CNAME to "<domain>.<target>" with TTL 60.
func (r *ChallengeReconciler) EnsureChallenge(ctx context.Context, domainName string) DomainResult {
	res := DomainResult{Domain: domainName}
	if ctx.Err() != nil {
		res.Outcome = OutcomeSkipped
		return res
	}

	ctx = logger.WithDomain(ctx, domainName)
	log := logger.FromContext(ctx)

	set, err := r.api.GetRecords(ctx, domainName)
	if err != nil {
		log.Warn("failed to read records", "error", err)
		res.Outcome = OutcomeFailed
		res.Err = domain.WrapOp("get records", err)
		return res
	}

	if existing, ok := set.FindChallenge(); ok {
		res.Outcome = OutcomeExisting
		res.Record = existing
		if n := len(set.ChallengeRecords()); n > 1 {
			res.Duplicates = n - 1
			log.Warn("multiple challenge records found, using the first", "count", n, "name", existing.Name)
		}
		log.Debug("challenge record present", "name", existing.Name, "value", existing.Value)
		return res
	}

	record := entity.NewChallengeRecord(entity.DNSRecordTypeCNAME, entity.ChallengeTarget(domainName, r.cfg.ChallengeTarget))
	res.Record = record

	if r.cfg.DryRun {
		res.Outcome = OutcomeWouldCreate
		log.Info("challenge record missing (dry run)", "value", record.Value)
		return res
	}

	status, err := r.api.PatchRecord(ctx, domainName, record)
	if err != nil {
		log.Warn("failed to add challenge record", "error", err)
		res.Outcome = OutcomeFailed
		res.Err = domain.WrapOp("patch record", err)
		return res
	}

	res.Status = status
	if !status.OK() {
		res.Outcome = OutcomeFailed
		res.Err = fmt.Errorf("%w: %s", domain.ErrAPIStatus, status)
		log.Warn("provider rejected challenge record", "status", status.Status, "description", status.StatusDescription)
		return res
	}

	res.Outcome = OutcomeCreated
	log.Info("challenge record added", "value", record.Value)
	return res
}

// SetChallenge upserts _acme-challenge on one domain with the given type
// and value, regardless of what is there now.
func (r *ChallengeReconciler) SetChallenge(ctx context.Context, domainName string, recordType entity.DNSRecordType, value string) (*valueobject.APIStatus, error) {
	if recordType != entity.DNSRecordTypeTXT && recordType != entity.DNSRecordTypeCNAME {
		return nil, fmt.Errorf("%w: challenge record must be TXT or CNAME, got %s", domain.ErrInvalidType, recordType)
	}
	record := entity.NewChallengeRecord(recordType, value)
	if err := record.Validate(); err != nil {
		return nil, err
	}

	ctx = logger.WithOperation(ctx, "set-challenge")
	return r.api.PatchRecord(ctx, domainName, record)
}

func (r *ChallengeReconciler) emit(res DomainResult) {
	if r.cfg.OnResult == nil {
		return
	}
	r.emitMu.Lock()
	defer r.emitMu.Unlock()
	r.cfg.OnResult(res)
}
