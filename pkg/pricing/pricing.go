// Package pricing converts source prices into storefront prices.
//
// Prices enter in source minor units and leave in storefront major units.
// Arithmetic is decimal; the final rounding is round-half-to-even.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects a pricing formula.
type Mode string

// Pricing modes.
const (
	// ModeA discounts the major-unit price by 20%.
	ModeA Mode = "A"
	// ModeB converts the major-unit price with an exchange formula and
	// adds the X, Y and Z surcharges.
	ModeB Mode = "B"
)

// ParseMode normalizes a mode name. The legacy names "thepoizon" and
// "dewu" map to ModeA and ModeB. Unknown names are returned unchanged and
// price as a pass-through.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "thepoizon":
		return ModeA
	case "b", "dewu":
		return ModeB
	default:
		return Mode(strings.TrimSpace(s))
	}
}

// Known reports whether m has a formula.
func (m Mode) Known() bool {
	return m == ModeA || m == ModeB
}

// Rounding selects how mode B treats its division result.
type Rounding int

const (
	// RoundOnce keeps the fractional division result and rounds once at the end.
	RoundOnce Rounding = iota
	// FloorIntermediate floors the division result before adding surcharges.
	FloorIntermediate
)

// String returns the rounding name.
func (r Rounding) String() string {
	if r == FloorIntermediate {
		return "floor-intermediate"
	}
	return "round-once"
}

// ParseRounding parses a rounding name; anything unrecognized is RoundOnce.
func ParseRounding(s string) Rounding {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "floor-intermediate", "floor":
		return FloorIntermediate
	default:
		return RoundOnce
	}
}

// Params fixes a mode and its surcharges.
type Params struct {
	Mode Mode  `json:"mode" yaml:"mode" mapstructure:"mode"`
	X    int64 `json:"x" yaml:"x" mapstructure:"x"`
	Y    int64 `json:"y" yaml:"y" mapstructure:"y"`
	Z    int64 `json:"z" yaml:"z" mapstructure:"z"`
}

var (
	modeAFactor = decimal.RequireFromString("0.8")
	modeBOffset = decimal.NewFromInt(2632)
	modeBRate   = decimal.RequireFromString("15.82")
)

// Calculate prices basePrice with RoundOnce rounding.
func Calculate(basePrice int64, mode Mode, x, y, z int64) int64 {
	return CalculateWith(basePrice, Params{Mode: mode, X: x, Y: y, Z: z}, RoundOnce)
}

// CalculateWith prices basePrice under p using the given mode B rounding.
func CalculateWith(basePrice int64, p Params, rounding Rounding) int64 {
	major := floorDiv(basePrice, 100)

	switch p.Mode {
	case ModeA:
		return decimal.NewFromInt(major).Mul(modeAFactor).RoundBank(0).IntPart()
	case ModeB:
		v := decimal.NewFromInt(major).Sub(modeBOffset).Div(modeBRate)
		if rounding == FloorIntermediate {
			v = v.Floor()
		}
		v = v.Add(decimal.NewFromInt(p.X + p.Y + p.Z))
		return v.RoundBank(0).IntPart()
	default:
		return major
	}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
