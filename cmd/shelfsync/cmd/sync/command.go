// Package sync provides the sync command implementation.
package sync

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfsync"
	"github.com/agentstation/shelfsync/internal/appcontext"
	"github.com/agentstation/shelfsync/internal/cmd/output"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/collector"
	"github.com/agentstation/shelfsync/pkg/errors"
	pkgsync "github.com/agentstation/shelfsync/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	DryRun      bool
	Target      int
	MaxPages    int
	Rank        bool
	ExcludeKids bool
	NoCarryOver bool
	Timeout     time.Duration
}

// NewCommand creates the sync command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync [brand...]",
		GroupID: "core",
		Short:   "Curate marketplace products and publish them to the store",
		Long: `Sync collects the current top products of each brand from the marketplace,
keeps previously published products that are still on the marketplace,
prices and renders them, and publishes them to the storefront.

Without arguments every configured brand is synchronized.`,
		Example: `  shelfsync sync                      # Sync every configured brand
  shelfsync sync nike "new balance"   # Sync two brands
  shelfsync sync --dry-run -o json    # Render without uploading
  shelfsync sync adidas --target 20   # Collect 20 products`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Execute(cmd, app, flags, args)
		},
	}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "render products without uploading them")
	cmd.Flags().IntVar(&flags.Target, "target", 0, "products to collect per brand (default from config)")
	cmd.Flags().IntVar(&flags.MaxPages, "max-pages", 0, "search pages to scan per brand (default from config)")
	cmd.Flags().BoolVar(&flags.Rank, "rank", false, "re-rank collected products by score")
	cmd.Flags().BoolVar(&flags.ExcludeKids, "exclude-kids", false, "skip products that look like kids sizes")
	cmd.Flags().BoolVar(&flags.NoCarryOver, "no-carry-over", false, "do not keep previously published products")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0, "timeout for the whole run (0 for none)")

	return cmd
}

// Execute runs a sync with the given flags and prints the result.
func Execute(cmd *cobra.Command, app appcontext.Interface, flags *Flags, args []string) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return &errors.ValidationError{Field: "format", Value: app.OutputFormat(), Message: err.Error()}
	}

	selected, err := selectBrands(app.Brands(), args)
	if err != nil {
		return err
	}

	var extra []collector.Option
	if cmd.Flags().Changed("max-pages") {
		extra = append(extra, collector.WithMaxPages(flags.MaxPages))
	}
	if cmd.Flags().Changed("exclude-kids") {
		extra = append(extra, collector.WithExcludeKids(flags.ExcludeKids))
	}

	s, err := app.ShelfsyncWithOptions(shelfsync.WithCollectorOptions(extra...))
	if err != nil {
		return err
	}
	if s == nil {
		return errors.NewResourceError("create", "shelfsync", "", errors.ErrNotFound)
	}

	result, err := s.Sync(cmd.Context(), selected, syncOptions(cmd, flags)...)
	if result != nil {
		if printErr := printResult(cmd.OutOrStdout(), output.DetectFormat(string(format)), result); printErr != nil {
			return printErr
		}
		fmt.Fprintln(cmd.ErrOrStderr(), result.Summary())
	}
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("sync finished with failures")
	}
	return nil
}

func syncOptions(cmd *cobra.Command, flags *Flags) []pkgsync.Option {
	opts := []pkgsync.Option{
		pkgsync.WithDryRun(flags.DryRun),
		pkgsync.WithRank(flags.Rank),
		pkgsync.WithCarryOver(!flags.NoCarryOver),
		pkgsync.WithTimeout(flags.Timeout),
	}
	if cmd.Flags().Changed("target") {
		opts = append(opts, pkgsync.WithTargetCount(flags.Target))
	}
	return opts
}

// selectBrands returns the configured brands named by args, or all of them.
func selectBrands(configured []catalogs.Brand, args []string) ([]catalogs.Brand, error) {
	if len(args) == 0 {
		return configured, nil
	}
	selected := make([]catalogs.Brand, 0, len(args))
	for _, name := range args {
		b, ok := catalogs.FindBrand(configured, name)
		if !ok {
			return nil, &errors.ValidationError{
				Field:   "brand",
				Value:   name,
				Message: "brand is not configured",
			}
		}
		selected = append(selected, b)
	}
	return selected, nil
}

func printResult(w io.Writer, format output.Format, result *pkgsync.Result) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, result)
	}
	return output.NewFormatter(format).Format(w, table(result))
}

func table(result *pkgsync.Result) output.Data {
	data := output.Data{
		Headers:      []string{"Brand", "Pages", "Collected", "Dropped", "Carried over", "Published", "Rejected", "Failed", "Errors"},
		RightAligned: []int{1, 2, 3, 4, 5, 6, 7},
	}
	for _, br := range result.Brands {
		published := br.Count(pkgsync.StatusPublished)
		if result.DryRun {
			published = br.Count(pkgsync.StatusRendered)
		}
		data.Rows = append(data.Rows, []string{
			br.Brand,
			strconv.Itoa(br.Pages),
			strconv.Itoa(br.Collected),
			strconv.Itoa(br.Dropped),
			strconv.Itoa(br.CarriedOver),
			strconv.Itoa(published),
			strconv.Itoa(br.Count(pkgsync.StatusRejected)),
			strconv.Itoa(br.Count(pkgsync.StatusFailed)),
			brandErrors(br),
		})
	}
	return data
}

func brandErrors(br *pkgsync.BrandResult) string {
	switch {
	case br.CollectError != "":
		return "collect: " + br.CollectError
	case br.ReconcileError != "":
		return "reconcile: " + br.ReconcileError
	case br.CarryOverFailures > 0:
		return fmt.Sprintf("%d carry-over fetches failed", br.CarryOverFailures)
	}
	return ""
}
