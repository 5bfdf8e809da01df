package tagalong

import (
	"fmt"
	"math"
	"strings"
)

// Geometry is the capability set shared by every shape.
type Geometry interface {
	Area() float64
	Perimeter() float64
}

// Shape is the closed set of shape variants: Rectangle and Circle, by value
// or by pointer. The unexported marker keeps other packages from adding
// variants, so a type switch over Shape can be exhaustive.
type Shape interface {
	Geometry
	Kind() Kind
	isShape()
}

// Kind tags a Shape variant.
type Kind int

const (
	KindRectangle Kind = iota + 1
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	if k != KindRectangle && k != KindCircle {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind maps a shape name to its Kind. Matching is case-insensitive
// and accepts the short forms "rect", "square" and "circ".
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rectangle", "rect", "square":
		return KindRectangle, nil
	case "circle", "circ":
		return KindCircle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rectangle) Area() float64 {
	return r.Width * r.Height
}

func (r Rectangle) Perimeter() float64 {
	return 2 * (r.Width + r.Height)
}

func (Rectangle) Kind() Kind { return KindRectangle }

func (Rectangle) isShape() {}

// Scale multiplies both sides by factor in place.
func (r *Rectangle) Scale(factor float64) {
	r.Width *= factor
	r.Height *= factor
}

// Circle is a circle of the given radius.
type Circle struct {
	Radius float64 `json:"radius"`
}

func (c Circle) Area() float64 {
	return math.Pi * c.Radius * c.Radius
}

func (c Circle) Perimeter() float64 {
	return 2 * math.Pi * c.Radius
}

func (Circle) Kind() Kind { return KindCircle }

func (Circle) isShape() {}

// Scale multiplies the radius by factor in place.
func (c *Circle) Scale(factor float64) {
	c.Radius *= factor
}

// NewShape builds a variant from its kind and dimensions. A rectangle takes
// width and height, or a single side for a square. A circle takes a radius.
// The returned Shape is a pointer so callers can Scale it.
func NewShape(kind Kind, dims ...float64) (Shape, error) {
	switch kind {
	case KindRectangle:
		switch len(dims) {
		case 1:
			return &Rectangle{Width: dims[0], Height: dims[0]}, nil
		case 2:
			return &Rectangle{Width: dims[0], Height: dims[1]}, nil
		}
		return nil, fmt.Errorf("%w: rectangle takes 1 or 2 dimensions, got %d", ErrDimensions, len(dims))
	case KindCircle:
		if len(dims) != 1 {
			return nil, fmt.Errorf("%w: circle takes 1 dimension, got %d", ErrDimensions, len(dims))
		}
		return &Circle{Radius: dims[0]}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}
