// Package brands provides the brands command implementation.
package brands

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfsync/internal/appcontext"
	"github.com/agentstation/shelfsync/internal/cmd/output"
	"github.com/agentstation/shelfsync/pkg/catalogs"
	"github.com/agentstation/shelfsync/pkg/errors"
)

// Check is the result of normalizing one sample product.
type Check struct {
	Raw          string   `json:"raw" yaml:"raw"`
	Title        string   `json:"title" yaml:"title"`
	Brand        string   `json:"brand" yaml:"brand"`
	ExcludedFrom []string `json:"excluded_from,omitempty" yaml:"excluded_from,omitempty"`
}

// NewCommand creates the brands command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var raw, title string

	cmd := &cobra.Command{
		Use:     "brands",
		GroupID: "tools",
		Short:   "List configured brands or check brand normalization",
		Long: `Brands lists the configured brands with the marketplace brand ids
attributed to each.

With --raw or --title it instead shows how a product with that marketplace
brand and title is named on the storefront, and which configured brands
skip it as an excluded sub-brand.`,
		Example: `  shelfsync brands
  shelfsync brands --raw "adidas originals" --title "adidas Yeezy Boost 350"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return &errors.ValidationError{Field: "format", Value: app.OutputFormat(), Message: err.Error()}
			}
			format = output.DetectFormat(string(format))

			if raw == "" && title == "" {
				return list(cmd.OutOrStdout(), format, app.Brands())
			}

			rules, err := app.Rules()
			if err != nil {
				return err
			}
			check := Check{Raw: raw, Title: title, Brand: rules.Normalize(raw, title)}
			for _, b := range app.Brands() {
				if _, excluded := rules.ExcludedSubBrand(b.Name, title); excluded {
					check.ExcludedFrom = append(check.ExcludedFrom, b.Name)
				}
			}
			return show(cmd.OutOrStdout(), format, check)
		},
	}

	cmd.Flags().StringVar(&raw, "raw", "", "marketplace brand name to normalize")
	cmd.Flags().StringVar(&title, "title", "", "product title to normalize")

	return cmd
}

func list(w io.Writer, format output.Format, brands []catalogs.Brand) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, brands)
	}
	data := output.Data{Headers: []string{"Brand", "Source IDs"}}
	for _, b := range brands {
		ids := make([]string, len(b.IDs))
		for i, id := range b.IDs {
			ids[i] = strconv.FormatInt(id, 10)
		}
		data.Rows = append(data.Rows, []string{b.Name, strings.Join(ids, ", ")})
	}
	return output.NewFormatter(format).Format(w, data)
}

func show(w io.Writer, format output.Format, check Check) error {
	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, check)
	}
	return output.NewFormatter(format).Format(w, output.Data{
		Headers: []string{"Raw", "Title", "Brand", "Excluded from"},
		Rows:    [][]string{{check.Raw, check.Title, check.Brand, strings.Join(check.ExcludedFrom, ", ")}},
	})
}
