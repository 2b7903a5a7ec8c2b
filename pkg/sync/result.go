package sync

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// Result represents the complete result of a sync run.
type Result struct {
	RunID     string         `json:"run_id" yaml:"run_id"`
	DryRun    bool           `json:"dry_run" yaml:"dry_run"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	Duration  time.Duration  `json:"duration" yaml:"duration"`
	Brands    []*BrandResult `json:"brands" yaml:"brands"`
}

// BrandResult represents the sync of a single brand.
type BrandResult struct {
	Brand string `json:"brand" yaml:"brand"`

	// Collection
	Pages     int `json:"pages" yaml:"pages"`
	Collected int `json:"collected" yaml:"collected"`

	// Reconciliation
	Dropped     int `json:"dropped" yaml:"dropped"`
	CarriedOver int `json:"carried_over" yaml:"carried_over"`

	Items []ItemResult `json:"items" yaml:"items"`

	// Failures that ended a stage early. Messages mirror the errors for output.
	CollectErr        error  `json:"-" yaml:"-"`
	CollectError      string `json:"collect_error,omitempty" yaml:"collect_error,omitempty"`
	ReconcileErr      error  `json:"-" yaml:"-"`
	ReconcileError    string `json:"reconcile_error,omitempty" yaml:"reconcile_error,omitempty"`
	CarryOverFailures int    `json:"carry_over_failures" yaml:"carry_over_failures"`
}

// ItemStatus is what happened to one product.
type ItemStatus string

// Item statuses.
const (
	StatusPublished ItemStatus = "published"
	StatusRejected  ItemStatus = "rejected" // The store answered with a non-success status
	StatusFailed    ItemStatus = "failed"   // The upload did not complete
	StatusRendered  ItemStatus = "rendered" // Dry run
)

// ItemResult represents one product of a brand.
type ItemResult struct {
	ProductID  catalogs.ProductID `json:"product_id" yaml:"product_id"`
	Title      string             `json:"title" yaml:"title"`
	SKU        string             `json:"sku" yaml:"sku"`
	Variations int                `json:"variations" yaml:"variations"`
	CarryOver  bool               `json:"carry_over" yaml:"carry_over"`
	Status     ItemStatus         `json:"status" yaml:"status"`
	StatusCode int                `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Message    string             `json:"message,omitempty" yaml:"message,omitempty"`
}

// SetCollectErr records the failure that ended collection.
func (br *BrandResult) SetCollectErr(err error) {
	br.CollectErr = err
	if err != nil {
		br.CollectError = err.Error()
	}
}

// SetReconcileErr records the failure that prevented reconciliation.
func (br *BrandResult) SetReconcileErr(err error) {
	br.ReconcileErr = err
	if err != nil {
		br.ReconcileError = err.Error()
	}
}

// Count returns the number of items with the given status.
func (br *BrandResult) Count(status ItemStatus) int {
	n := 0
	for _, it := range br.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}

// HasFailures reports whether anything in the brand did not go through.
func (br *BrandResult) HasFailures() bool {
	return br.CollectErr != nil || br.ReconcileErr != nil || br.CarryOverFailures > 0 ||
		br.Count(StatusRejected) > 0 || br.Count(StatusFailed) > 0
}

// Summary returns a human-readable summary of the brand result.
func (br *BrandResult) Summary() string {
	s := fmt.Sprintf("%s: %d collected, %d carried over, %d published, %d failed",
		br.Brand, br.Collected, br.CarriedOver, br.Count(StatusPublished),
		br.Count(StatusRejected)+br.Count(StatusFailed))
	if br.CollectErr != nil {
		s += " (collection stopped early)"
	}
	return s
}

// Count returns the number of items with the given status across brands.
func (r *Result) Count(status ItemStatus) int {
	n := 0
	for _, br := range r.Brands {
		n += br.Count(status)
	}
	return n
}

// HasFailures reports whether any brand had a failure.
func (r *Result) HasFailures() bool {
	for _, br := range r.Brands {
		if br.HasFailures() {
			return true
		}
	}
	return false
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	items := 0
	for _, br := range r.Brands {
		items += len(br.Items)
	}
	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	}
	summary := fmt.Sprintf("%d products across %d brands: %d published, %d failed",
		items, len(r.Brands), r.Count(StatusPublished), r.Count(StatusRejected)+r.Count(StatusFailed))
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}
