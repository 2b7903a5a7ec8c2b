// Package price provides the price command implementation.
package price

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/shelfsync/internal/appcontext"
	"github.com/agentstation/shelfsync/internal/cmd/output"
	"github.com/agentstation/shelfsync/pkg/errors"
	"github.com/agentstation/shelfsync/pkg/pricing"
)

// Quote is the printed result of one price computation.
type Quote struct {
	Base     int64        `json:"base" yaml:"base"`
	Mode     pricing.Mode `json:"mode" yaml:"mode"`
	X        int64        `json:"x" yaml:"x"`
	Y        int64        `json:"y" yaml:"y"`
	Z        int64        `json:"z" yaml:"z"`
	Rounding string       `json:"rounding" yaml:"rounding"`
	Price    int64        `json:"price" yaml:"price"`
}

// NewCommand creates the price command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		mode    string
		x, y, z int64
		floor   bool
	)

	cmd := &cobra.Command{
		Use:     "price <base>",
		GroupID: "tools",
		Short:   "Compute the storefront price of a source price",
		Long: `Price converts a source price in minor units into a storefront price
using the configured pricing mode. Flags override the configuration.

Mode A discounts the major-unit price by 20%. Mode B converts it with the
exchange formula and adds the X, Y and Z surcharges.`,
		Example: `  shelfsync price 125000                  # Configured mode
  shelfsync price 300000 --mode B --x 10 --y 5
  shelfsync price 280100 --mode B --floor-intermediate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return &errors.ValidationError{
					Field:   "base",
					Value:   args[0],
					Message: "base price must be an integer in minor units",
				}
			}

			params, rounding := app.Pricing()
			flags := cmd.Flags()
			if flags.Changed("mode") {
				params.Mode = pricing.ParseMode(mode)
			}
			if flags.Changed("x") {
				params.X = x
			}
			if flags.Changed("y") {
				params.Y = y
			}
			if flags.Changed("z") {
				params.Z = z
			}
			if flags.Changed("floor-intermediate") {
				rounding = pricing.RoundOnce
				if floor {
					rounding = pricing.FloorIntermediate
				}
			}
			if !params.Mode.Known() {
				app.Logger().Warn().Str("mode", string(params.Mode)).Msg("Unknown pricing mode, price passes through")
			}

			quote := Quote{
				Base:     base,
				Mode:     params.Mode,
				X:        params.X,
				Y:        params.Y,
				Z:        params.Z,
				Rounding: rounding.String(),
				Price:    pricing.CalculateWith(base, params, rounding),
			}
			return printQuote(cmd, app.OutputFormat(), quote)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "pricing mode: A (thepoizon) or B (dewu)")
	cmd.Flags().Int64Var(&x, "x", 0, "mode B surcharge X")
	cmd.Flags().Int64Var(&y, "y", 0, "mode B surcharge Y")
	cmd.Flags().Int64Var(&z, "z", 0, "mode B surcharge Z")
	cmd.Flags().BoolVar(&floor, "floor-intermediate", false, "floor the mode B division before adding surcharges")

	return cmd
}

func printQuote(cmd *cobra.Command, format string, q Quote) error {
	f, err := output.ParseFormat(format)
	if err != nil {
		return &errors.ValidationError{Field: "format", Value: format, Message: err.Error()}
	}
	f = output.DetectFormat(string(f))
	if f != output.FormatTable {
		return output.NewFormatter(f).Format(cmd.OutOrStdout(), q)
	}
	return output.NewFormatter(f).Format(cmd.OutOrStdout(), output.Data{
		Headers: []string{"Base", "Mode", "X", "Y", "Z", "Rounding", "Price"},
		Rows: [][]string{{
			strconv.FormatInt(q.Base, 10),
			string(q.Mode),
			strconv.FormatInt(q.X, 10),
			strconv.FormatInt(q.Y, 10),
			strconv.FormatInt(q.Z, 10),
			q.Rounding,
			strconv.FormatInt(q.Price, 10),
		}},
		RightAligned: []int{0, 2, 3, 4, 6},
	})
}
