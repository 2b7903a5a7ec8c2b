package reconciler_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/shelfsync/internal/fakes"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/collector"
	"github.com/agentstation/shelfsync/pkg/convert"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/logging"
	"github.com/agentstation/shelfsync/pkg/pacing"
	"github.com/agentstation/shelfsync/pkg/reconciler"
)

func newReconciler(t *testing.T, src *fakes.Source, dest *fakes.Storefront, opts ...reconciler.Option) *reconciler.Reconciler {
	t.Helper()
	fetcher := collector.NewDetailFetcher(src, convert.NewPoizonMapper(nil), pacing.Retry{Attempts: 2})
	base := []reconciler.Option{
		reconciler.WithGate(pacing.Nop()),
		reconciler.WithLogger(logging.NewNopLogger()),
	}
	r, err := reconciler.New(fetcher, dest, append(base, opts...)...)
	require.NoError(t, err)
	return r
}

func top(ids ...string) []*catalogs.Product {
	out := make([]*catalogs.Product, 0, len(ids))
	for _, id := range ids {
		out = append(out, &catalogs.Product{ID: catalogs.ProductID(id)})
	}
	return out
}

func TestReconcileCarriesOverEligible(t *testing.T) {
	src := fakes.NewSource().AddDetail(
		fakes.Detail("1", "Samba", "adidas", "A1", "42"),
		fakes.Detail("2", "Gazelle", "adidas", "A2", "42"),
		fakes.Detail("3", "Campus", "adidas", "A3"), // sizes gone
		fakes.Detail("5", "Forum", "adidas", "A5", "41"),
	)
	dest := fakes.NewStorefront().Publish("Adidas", "1", "2", "3", "4", "5")
	r := newReconciler(t, src, dest)

	result, err := r.Reconcile(context.Background(), "Adidas", top("2", "9"))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Previous)
	assert.Equal(t, []catalogs.ProductID{"1", "3", "4", "5"}, result.Dropped)
	assert.Equal(t, []catalogs.ProductID{"1", "5"}, catalogs.IDs(result.CarriedOver))
	assert.Equal(t, []catalogs.ProductID{"3", "4"}, result.Ineligible)
	assert.Empty(t, result.Failed)
	assert.Equal(t, 0, src.DetailCalls("2"), "products in the new top are not re-fetched")
}

// For any published set P and new top T the carried-over ids are exactly
// the members of P - T that are still eligible upstream.
func TestReconcileCarryOverProperty(t *testing.T) {
	for seed := 0; seed < 16; seed++ {
		t.Run(fmt.Sprint(seed), func(t *testing.T) {
			src := fakes.NewSource()
			dest := fakes.NewStorefront()
			var newTop []string
			want := []catalogs.ProductID{}

			for i := 0; i < 8; i++ {
				id := fmt.Sprint(i)
				published := (seed>>(i%4))&1 == 1 || i == 0
				inTop := (seed+i)%3 == 0
				eligible := (seed*7+i)%2 == 0

				if published {
					dest.Publish("Nike", catalogs.ProductID(id))
				}
				if inTop {
					newTop = append(newTop, id)
				}
				article := ""
				if eligible {
					article = "N" + id
				}
				src.AddDetail(fakes.Detail(id, "Dunk "+id, "Nike", article, "42"))

				if published && !inTop && eligible {
					want = append(want, catalogs.ProductID(id))
				}
			}

			result, err := newReconciler(t, src, dest).Reconcile(context.Background(), "Nike", top(newTop...))
			require.NoError(t, err)

			got := catalogs.IDs(result.CarriedOver)
			assert.Equal(t, want, got)
			for _, id := range got {
				assert.NotContains(t, newTop, id.String())
			}
		})
	}
}

func TestReconcilePerItemFailure(t *testing.T) {
	src := fakes.NewSource().
		AddDetail(fakes.Detail("2", "Gazelle", "adidas", "A2", "42")).
		FailDetail("1", stderrors.New("connection reset"))
	dest := fakes.NewStorefront().Publish("Adidas", "1", "2")
	tl := logging.NewTestLogger(t)
	r := newReconciler(t, src, dest, reconciler.WithLogger(tl.Logger))

	result, err := r.Reconcile(context.Background(), "Adidas", nil)
	require.NoError(t, err)

	assert.Equal(t, []catalogs.ProductID{"2"}, catalogs.IDs(result.CarriedOver))
	require.Contains(t, result.Failed, catalogs.ProductID("1"))
	assert.True(t, errors.IsRetriesExhausted(result.Failed["1"]))
	assert.Equal(t, []catalogs.ProductID{"1"}, result.FailedIDs())
	tl.AssertContains(t, "Re-fetch failed, not carried over")
}

func TestReconcileListFailure(t *testing.T) {
	cause := stderrors.New("401 unauthorized")
	dest := fakes.NewStorefront().FailList("Adidas", cause)
	r := newReconciler(t, fakes.NewSource(), dest)

	result, err := r.Reconcile(context.Background(), "Adidas", nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, cause)
}

func TestReconcilePacesEachRefetch(t *testing.T) {
	src := fakes.NewSource().AddDetail(
		fakes.Detail("1", "Samba", "adidas", "A1", "42"),
		fakes.Detail("2", "Gazelle", "adidas", "", "42"),
	)
	dest := fakes.NewStorefront().Publish("Adidas", "1", "2")
	gate := &countingGate{}
	r := newReconciler(t, src, dest, reconciler.WithGate(gate))

	_, err := r.Reconcile(context.Background(), "Adidas", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, gate.waits)
}

func TestReconcileCanceled(t *testing.T) {
	dest := fakes.NewStorefront().Publish("Adidas", "1")
	r := newReconciler(t, fakes.NewSource(), dest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Reconcile(ctx, "Adidas", nil)
	assert.Error(t, err)
}

func TestNewValidation(t *testing.T) {
	fetcher := collector.NewDetailFetcher(fakes.NewSource(), convert.NewPoizonMapper(nil), pacing.NoRetry)

	_, err := reconciler.New(nil, fakes.NewStorefront())
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(fetcher, nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = reconciler.New(fetcher, fakes.NewStorefront(), reconciler.WithGate(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestDiff(t *testing.T) {
	ids := func(s ...string) []catalogs.ProductID {
		out := make([]catalogs.ProductID, len(s))
		for i, v := range s {
			out[i] = catalogs.ProductID(v)
		}
		return out
	}

	assert.Equal(t, ids("1", "3"), reconciler.Diff(ids("1", "2", "3"), ids("2")))
	assert.Equal(t, ids("3", "1"), reconciler.Diff(ids("3", "1", "3"), nil), "duplicates collapse")
	assert.Empty(t, reconciler.Diff(nil, ids("1")))
	assert.Empty(t, reconciler.Diff(ids("1"), ids("1")))
}

func TestMerge(t *testing.T) {
	newTop := top("1", "2")
	carried := top("7")
	merged := reconciler.Merge(newTop, carried)
	assert.Equal(t, []catalogs.ProductID{"1", "2", "7"}, catalogs.IDs(merged))

	merged[0] = nil
	assert.NotNil(t, newTop[0])
	assert.Empty(t, reconciler.Merge(nil, nil))
}

type countingGate struct{ waits int }

func (g *countingGate) Wait(context.Context) error {
	g.waits++
	return nil
}
