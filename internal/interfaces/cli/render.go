package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lite-lake/mijnhost-dns/internal/application/usecase"
	"github.com/lite-lake/mijnhost-dns/internal/infrastructure/mijnhost"
)

// exitError carries an exit code for failures that were already reported
// on the console.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func isUnknownCommand(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

func renderError(w io.Writer, err error) int {
	var exitErr *exitError
	var apiErr *mijnhost.APIError

	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case isUnknownCommand(err):
		fmt.Fprintln(w, ErrorStyle.Render("Unknown command: "+err.Error()))
		fmt.Fprint(w, usageText)
		return 0
	case errors.As(err, &apiErr):
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("API error (HTTP %d): %d - %s", apiErr.HTTPStatus, apiErr.Status, apiErr.StatusDescription)))
		return 1
	default:
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("Unexpected error: %v", err)))
		return 1
	}
}

// failureReason prefers the provider's own description over the wrapped
// error chain.
func failureReason(res usecase.DomainResult) string {
	var apiErr *mijnhost.APIError
	switch {
	case errors.As(res.Err, &apiErr):
		return apiErr.StatusDescription
	case res.Status != nil:
		return res.Status.StatusDescription
	case res.Err != nil:
		return res.Err.Error()
	default:
		return "unknown failure"
	}
}

func renderResult(w io.Writer, res usecase.DomainResult) {
	switch res.Outcome {
	case usecase.OutcomeExisting:
		fmt.Fprintf(w, "%s -> %s\n", res.Domain, res.Record.Value)
		if res.Duplicates > 0 {
			fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("  %d more _acme-challenge record(s) on %s", res.Duplicates, res.Domain)))
		}
	case usecase.OutcomeCreated:
		fmt.Fprintln(w, SuccessStyle.Render("Added _acme-challenge for "+res.Domain))
	case usecase.OutcomeWouldCreate:
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("Would add _acme-challenge for %s -> %s", res.Domain, res.Record.Value)))
	case usecase.OutcomeFailed:
		if res.Record.Name == "" {
			fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("Failed to check %s: %s", res.Domain, failureReason(res))))
			return
		}
		fmt.Fprintln(w, ErrorStyle.Render(fmt.Sprintf("Failed to add _acme-challenge for %s: %s", res.Domain, failureReason(res))))
	case usecase.OutcomeSkipped:
		fmt.Fprintln(w, MutedStyle.Render("Skipped "+res.Domain))
	}
}

var summaryOrder = []usecase.Outcome{
	usecase.OutcomeExisting,
	usecase.OutcomeCreated,
	usecase.OutcomeWouldCreate,
	usecase.OutcomeFailed,
	usecase.OutcomeSkipped,
}

func renderSummary(w io.Writer, report *usecase.Report) {
	title := cases.Title(language.English)
	parts := make([]string, 0, len(summaryOrder))
	for _, o := range summaryOrder {
		n := report.Count(o)
		if n == 0 && (o == usecase.OutcomeWouldCreate || o == usecase.OutcomeSkipped) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d", title.String(string(o)), n))
	}
	fmt.Fprintln(w, MutedStyle.Render(strings.Join(parts, ", ")))
}
