package tagalong

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when a ratio's denominator is zero,
	// as with the efficiency of a shape whose perimeter is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDimensions is returned when a shape is built from the wrong
	// number of dimensions.
	ErrDimensions = errors.New("wrong number of dimensions")

	// ErrUnknownKind is returned for a shape name or Kind outside the union.
	ErrUnknownKind = errors.New("unknown shape kind")

	// ErrNilShape is returned when a nil shape is measured.
	ErrNilShape = errors.New("nil shape")
)

// Efficiency returns the area enclosed per unit of perimeter.
func Efficiency(g Geometry) (float64, error) {
	if isNil(g) {
		return 0, fmt.Errorf("tagalong: efficiency: %w", ErrNilShape)
	}
	perim := g.Perimeter()
	if perim == 0 {
		return 0, fmt.Errorf("tagalong: efficiency of %s: %w", describe(g), ErrDivisionByZero)
	}
	return g.Area() / perim, nil
}

// isNil reports whether g is nil or a nil variant pointer.
func isNil(g Geometry) bool {
	switch v := g.(type) {
	case nil:
		return true
	case *Rectangle:
		return v == nil
	case *Circle:
		return v == nil
	}
	return false
}

// describe names g by its kind and dimensions, e.g. "rectangle 0x0".
func describe(g Geometry) string {
	switch v := g.(type) {
	case Rectangle:
		return fmt.Sprintf("%s %gx%g", v.Kind(), v.Width, v.Height)
	case *Rectangle:
		return describe(*v)
	case Circle:
		return fmt.Sprintf("%s of radius %g", v.Kind(), v.Radius)
	case *Circle:
		return describe(*v)
	}
	return fmt.Sprintf("%T", g)
}

// DetectCircle reports the radius of s when s is a circle.
func DetectCircle(s Shape) (radius float64, isCircle bool) {
	switch v := s.(type) {
	case Circle:
		return v.Radius, true
	case *Circle:
		if v == nil {
			return 0, false
		}
		return v.Radius, true
	case Rectangle, *Rectangle:
		return 0, false
	}
	return 0, false
}

// Measurement holds the derived metrics of a single shape.
type Measurement struct {
	Kind       Kind    `json:"kind"`
	Area       float64 `json:"area"`
	Perimeter  float64 `json:"perimeter"`
	Efficiency float64 `json:"efficiency"`
}

// Measure computes area, perimeter and efficiency of s.
func Measure(s Shape) (Measurement, error) {
	eff, err := Efficiency(s)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		Kind:       s.Kind(),
		Area:       s.Area(),
		Perimeter:  s.Perimeter(),
		Efficiency: eff,
	}, nil
}
