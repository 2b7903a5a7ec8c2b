package sync

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/shelfsync/pkg/errors"
)

func TestOptions(t *testing.T) {
	opts := Defaults()
	assert.Equal(t, 50, opts.TargetCount)
	assert.True(t, opts.CarryOver)
	assert.NoError(t, opts.Validate())

	opts.Apply(WithDryRun(true), WithTargetCount(5), WithRank(true), WithCarryOver(false))
	assert.True(t, opts.DryRun)
	assert.Equal(t, 5, opts.TargetCount)
	assert.True(t, opts.Rank)
	assert.False(t, opts.CarryOver)

	assert.True(t, errors.IsValidationError(Defaults().Apply(WithTargetCount(0)).Validate()))
	assert.True(t, errors.IsValidationError(Defaults().Apply(WithTimeout(-1)).Validate()))
}

func TestResultSummary(t *testing.T) {
	nike := &BrandResult{
		Brand:     "Nike",
		Collected: 2,
		Items: []ItemResult{
			{ProductID: "1", Status: StatusPublished},
			{ProductID: "2", Status: StatusRejected, StatusCode: 400},
		},
	}
	adidas := &BrandResult{Brand: "Adidas", Collected: 1, Items: []ItemResult{{ProductID: "3", Status: StatusPublished}}}
	adidas.SetCollectErr(stderrors.New("search failed"))

	r := &Result{Brands: []*BrandResult{nike, adidas}}
	assert.Equal(t, 2, r.Count(StatusPublished))
	assert.True(t, r.HasFailures())
	assert.Equal(t, "3 products across 2 brands: 2 published, 1 failed", r.Summary())
	assert.Equal(t, "Nike: 2 collected, 0 carried over, 1 published, 1 failed", nike.Summary())
	assert.Contains(t, adidas.Summary(), "collection stopped early")
	assert.Equal(t, "search failed", adidas.CollectError)

	clean := &Result{DryRun: true, Brands: []*BrandResult{{Brand: "Vans", Items: []ItemResult{{Status: StatusRendered}}}}}
	assert.False(t, clean.HasFailures())
	assert.Contains(t, clean.Summary(), "(Dry run)")
}
