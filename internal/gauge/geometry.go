package gauge

import "math"

// Geometry describes a ring in abstract units: outer diameter, stroke width
// and the value that fills the whole ring.
type Geometry struct {
	Size        float64
	StrokeWidth float64
	MaxValue    float64
}

// DefaultGeometry is a 110-unit ring with a 10-unit stroke on a 0-10 scale.
func DefaultGeometry() Geometry {
	return Geometry{Size: DefaultSize, StrokeWidth: DefaultStrokeWidth, MaxValue: DefaultMaxValue}
}

// Radius is the radius of the stroke's centre line.
func (g Geometry) Radius() float64 {
	return (g.Size - g.StrokeWidth) / 2
}

// Circumference is the length of the stroke's centre line.
func (g Geometry) Circumference() float64 {
	return 2 * math.Pi * g.Radius()
}

// Fraction is the filled share of the ring for v, clamped to [0, 1].
func (g Geometry) Fraction(v float64) float64 {
	if g.MaxValue <= 0 || math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(0, v/g.MaxValue))
}

// ArcLength is the filled length of the stroke for v.
func (g Geometry) ArcLength(v float64) float64 {
	return g.Circumference() * g.Fraction(v)
}

// DashOffset is the unfilled length of the stroke for v.
func (g Geometry) DashOffset(v float64) float64 {
	return g.Circumference() - g.ArcLength(v)
}

// StrokeRatio is the stroke width relative to the outer radius.
func (g Geometry) StrokeRatio() float64 {
	if g.Size <= 0 {
		return 0
	}
	return g.StrokeWidth / (g.Size / 2)
}
