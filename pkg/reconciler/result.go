package reconciler

import (
	"time"

	"github.com/agentstation/shelfsync/pkg/catalogs"
)

// Result represents the outcome of reconciling one brand.
type Result struct {
	Brand string `json:"brand" yaml:"brand"`

	// Previous is the number of identifiers published before this run.
	Previous int `json:"previous" yaml:"previous"`

	// Dropped lists previously published identifiers absent from the new top.
	Dropped []catalogs.ProductID `json:"dropped" yaml:"dropped"`

	// CarriedOver holds the dropped products that are still eligible upstream.
	CarriedOver []*catalogs.Product `json:"carried_over" yaml:"carried_over"`

	// Ineligible lists dropped identifiers that are gone or no longer eligible.
	Ineligible []catalogs.ProductID `json:"ineligible" yaml:"ineligible"`

	// Failed maps dropped identifiers whose re-fetch failed to the error.
	Failed map[catalogs.ProductID]error `json:"-" yaml:"-"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// FailedIDs returns the identifiers in Failed in Dropped order.
func (r *Result) FailedIDs() []catalogs.ProductID {
	ids := make([]catalogs.ProductID, 0, len(r.Failed))
	for _, id := range r.Dropped {
		if _, ok := r.Failed[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
