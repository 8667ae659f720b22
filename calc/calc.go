// Package calc implements the fabric measurement engine: per-stitch rules
// mapping raw window dimensions to fabric quantity, track length, square
// footage and panel count.
package calc

import "math"

// Stitch identifies the curtain heading / blind style. It drives which
// formula set applies to a window.
type Stitch string

const (
	Pleated       Stitch = "Pleated"
	Ripple        Stitch = "Ripple"
	Eyelet        Stitch = "Eyelet"
	RomanBlinds48 Stitch = `Roman Blinds 48"`
	RomanBlinds54 Stitch = `Roman Blinds 54"`
	BlindsRegular Stitch = "Blinds (Regular)"
)

// Stitches lists every known stitch type in display order.
var Stitches = []Stitch{Pleated, Ripple, Eyelet, RomanBlinds48, RomanBlinds54, BlindsRegular}

// Valid reports whether s is one of the known stitch types.
func (s Stitch) Valid() bool {
	switch s {
	case Pleated, Ripple, Eyelet, RomanBlinds48, RomanBlinds54, BlindsRegular:
		return true
	}
	return false
}

// panelDivisor returns the fabric-width divisor for curtain stitches,
// or 0 for stitches that are not panel-based.
func (s Stitch) panelDivisor() float64 {
	switch s {
	case Pleated:
		return 18
	case Ripple:
		return 20
	case Eyelet:
		return 24
	}
	return 0
}

// Measurements holds the derived fields for one window. Fields that do not
// apply to the stitch type are nil, never zero: a regular blind has no track
// length, a pleated curtain has no square footage.
type Measurements struct {
	Quantity  float64  `json:"quantity"`
	TrackFeet *float64 `json:"trackFeet"`
	SQFT      *float64 `json:"sqft"`
	Panels    *int     `json:"panels"`
}

// HeightFactor converts a height in inches to a fabric length factor,
// rounded to two decimals. Ties round half to even, matching the rounding
// used throughout the measurement rules.
func HeightFactor(height float64) float64 {
	return roundEven2((height + 14) / 39)
}

// CeilToHalf rounds v up to the next multiple of 0.5.
func CeilToHalf(v float64) float64 {
	return math.Ceil(v*2) / 2
}

// Measure derives all applicable fields for one window. It is a pure
// function of its inputs: identical inputs always produce identical output.
// Width and height are assumed non-negative; callers validate at the input
// boundary. An unknown stitch yields a zero quantity with every optional
// field nil rather than an error, so a bad row stays usable on screen.
func Measure(stitch Stitch, width, height float64) Measurements {
	h := HeightFactor(height)

	switch stitch {
	case Pleated, Ripple, Eyelet:
		panels := int(math.RoundToEven(width / stitch.panelDivisor()))
		track := CeilToHalf(width / 12)
		return Measurements{
			Quantity:  float64(panels) * h,
			TrackFeet: &track,
			Panels:    &panels,
		}
	case RomanBlinds48:
		return romanMeasure(width, height, h, 44)
	case RomanBlinds54:
		return romanMeasure(width, height, h, 50)
	case BlindsRegular:
		sqft := squareFeet(width, height)
		return Measurements{Quantity: 0, SQFT: &sqft}
	}

	return Measurements{}
}

// romanMeasure handles the two roman blind widths, which differ only in the
// usable fabric width per panel.
func romanMeasure(width, height, heightFactor, panelWidth float64) Measurements {
	panels := math.Ceil(width / panelWidth)
	sqft := squareFeet(width, height)
	return Measurements{
		Quantity: math.RoundToEven(panels * heightFactor),
		SQFT:     &sqft,
	}
}

// squareFeet computes blind fabric area from dimensions rounded up to the
// half foot. Rounding up never under-orders material.
func squareFeet(width, height float64) float64 {
	return CeilToHalf(width/12) * CeilToHalf(height/12)
}

// roundEven2 rounds to two decimal places, half to even.
func roundEven2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
