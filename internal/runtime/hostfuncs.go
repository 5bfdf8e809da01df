package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/risor-io/risor/object"

	"github.com/jward/tagalong"
)

// shapeObject is the script-side handle for a shape. Scripts receive it as
// a proxy and may call its methods directly (s.Area(), s.Kind()) or pass it
// back to the host functions below.
type shapeObject struct {
	shape tagalong.Shape
}

// newShapeObject wraps s, copying value variants so Scale can mutate them.
func newShapeObject(s tagalong.Shape) *shapeObject {
	switch v := s.(type) {
	case tagalong.Rectangle:
		return &shapeObject{shape: &v}
	case tagalong.Circle:
		return &shapeObject{shape: &v}
	}
	return &shapeObject{shape: s}
}

func (s *shapeObject) Area() float64      { return s.shape.Area() }
func (s *shapeObject) Perimeter() float64 { return s.shape.Perimeter() }
func (s *shapeObject) Kind() string       { return s.shape.Kind().String() }

func (s *shapeObject) Scale(factor float64) {
	switch v := s.shape.(type) {
	case *tagalong.Rectangle:
		v.Scale(factor)
	case *tagalong.Circle:
		v.Scale(factor)
	}
}

func (s *shapeObject) String() string {
	switch v := s.shape.(type) {
	case *tagalong.Rectangle:
		return fmt.Sprintf("rectangle(%g, %g)", v.Width, v.Height)
	case *tagalong.Circle:
		return fmt.Sprintf("circle(%g)", v.Radius)
	}
	return s.Kind()
}

func shapeProxy(name string, s tagalong.Shape) object.Object {
	p, err := object.NewProxy(newShapeObject(s))
	if err != nil {
		return object.Errorf("%s: proxy error: %v", name, err)
	}
	return p
}

// makeRectangleFn creates the "rectangle" host function.
//
// rectangle(width, height) → shape
func makeRectangleFn() *object.Builtin {
	return object.NewBuiltin("rectangle", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("rectangle", 2, len(args))
		}
		w, err := toFloat(args[0])
		if err != nil {
			return object.Errorf("rectangle: width %v", err)
		}
		h, err := toFloat(args[1])
		if err != nil {
			return object.Errorf("rectangle: height %v", err)
		}
		return shapeProxy("rectangle", &tagalong.Rectangle{Width: w, Height: h})
	})
}

// makeCircleFn creates the "circle" host function.
//
// circle(radius) → shape
func makeCircleFn() *object.Builtin {
	return object.NewBuiltin("circle", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("circle", 1, len(args))
		}
		r, err := toFloat(args[0])
		if err != nil {
			return object.Errorf("circle: radius %v", err)
		}
		return shapeProxy("circle", &tagalong.Circle{Radius: r})
	})
}

// makeShapeFn creates the "shape" host function. Risor scripts cannot
// construct Go struct pointers, so this accepts a map and builds the
// variant Go-side.
//
// shape({"kind": "rectangle", "width": 1, "height": 4}) → shape
// shape({"kind": "circle", "radius": 4}) → shape
// shape({"kind": "square", "side": 4}) → shape
func makeShapeFn() *object.Builtin {
	return object.NewBuiltin("shape", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("shape", 1, len(args))
		}
		m, err := extractMap(args[0])
		if err != nil {
			return object.Errorf("shape: %v", err)
		}
		name := getString(m, "kind")
		kind, err := tagalong.ParseKind(name)
		if err != nil {
			return object.Errorf("shape: %v", err)
		}

		dims, err := shapeDims(kind, name, m)
		if err != nil {
			return object.Errorf("shape: %v", err)
		}
		s, err := tagalong.NewShape(kind, dims...)
		if err != nil {
			return object.Errorf("shape: %v", err)
		}
		return shapeProxy("shape", s)
	})
}

// makeAreaFn creates the "area" host function.
//
// area(shape) → float
func makeAreaFn() *object.Builtin {
	return object.NewBuiltin("area", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("area", 1, len(args))
		}
		s, err := shapeArg(args[0])
		if err != nil {
			return object.Errorf("area: %v", err)
		}
		return object.NewFloat(s.Area())
	})
}

// makePerimeterFn creates the "perimeter" host function.
//
// perimeter(shape) → float
func makePerimeterFn() *object.Builtin {
	return object.NewBuiltin("perimeter", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("perimeter", 1, len(args))
		}
		s, err := shapeArg(args[0])
		if err != nil {
			return object.Errorf("perimeter: %v", err)
		}
		return object.NewFloat(s.Perimeter())
	})
}

// makeEfficiencyFn creates the "efficiency" host function. A zero
// perimeter raises an error in the script.
//
// efficiency(shape) → float
func makeEfficiencyFn() *object.Builtin {
	return object.NewBuiltin("efficiency", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("efficiency", 1, len(args))
		}
		s, err := shapeArg(args[0])
		if err != nil {
			return object.Errorf("efficiency: %v", err)
		}
		eff, err := tagalong.Efficiency(s)
		if err != nil {
			return object.Errorf("efficiency: %v", err)
		}
		return object.NewFloat(eff)
	})
}

// makeDetectCircleFn creates the "detect_circle" host function.
//
// detect_circle(shape) → [radius, is_circle]
func makeDetectCircleFn() *object.Builtin {
	return object.NewBuiltin("detect_circle", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 1 {
			return object.NewArgsError("detect_circle", 1, len(args))
		}
		s, err := shapeArg(args[0])
		if err != nil {
			return object.Errorf("detect_circle: %v", err)
		}
		radius, ok := tagalong.DetectCircle(s)
		return object.NewList([]object.Object{object.NewFloat(radius), object.NewBool(ok)})
	})
}

// makeScaleFn creates the "scale" host function. The shape is resized in
// place and returned for chaining.
//
// scale(shape, factor) → shape
func makeScaleFn() *object.Builtin {
	return object.NewBuiltin("scale", func(ctx context.Context, args ...object.Object) object.Object {
		if len(args) != 2 {
			return object.NewArgsError("scale", 2, len(args))
		}
		obj, err := shapeObjectArg(args[0])
		if err != nil {
			return object.Errorf("scale: %v", err)
		}
		factor, err := toFloat(args[1])
		if err != nil {
			return object.Errorf("scale: factor %v", err)
		}
		obj.Scale(factor)
		return args[0]
	})
}

// --- Argument helpers ---

func shapeObjectArg(obj object.Object) (*shapeObject, error) {
	proxy, ok := obj.(*object.Proxy)
	if !ok {
		return nil, fmt.Errorf("expected shape, got %s", obj.Type())
	}
	s, ok := proxy.Interface().(*shapeObject)
	if !ok {
		return nil, fmt.Errorf("expected shape, got %T", proxy.Interface())
	}
	return s, nil
}

func shapeArg(obj object.Object) (tagalong.Shape, error) {
	s, err := shapeObjectArg(obj)
	if err != nil {
		return nil, err
	}
	return s.shape, nil
}

func toFloat(obj object.Object) (float64, error) {
	switch v := obj.(type) {
	case *object.Float:
		return v.Value(), nil
	case *object.Int:
		return float64(v.Value()), nil
	}
	return 0, fmt.Errorf("must be a number, got %s", obj.Type())
}

func extractMap(obj object.Object) (map[string]object.Object, error) {
	m, ok := obj.(*object.Map)
	if !ok {
		return nil, fmt.Errorf("expected map, got %s", obj.Type())
	}
	return m.Value(), nil
}

func getString(m map[string]object.Object, key string) string {
	if s, ok := m[key].(*object.String); ok {
		return s.Value()
	}
	return ""
}

func getFloat(m map[string]object.Object, key string) (float64, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("missing %q", key)
	}
	f, err := toFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%q %w", key, err)
	}
	return f, nil
}

// shapeDims reads the dimensions of kind from a shape() map. A square is
// given by "side", or by a lone "width" when the kind is named "square".
func shapeDims(kind tagalong.Kind, name string, m map[string]object.Object) ([]float64, error) {
	keys := []string{"radius"}
	if kind == tagalong.KindRectangle {
		_, hasSide := m["side"]
		_, hasHeight := m["height"]
		switch {
		case hasSide:
			keys = []string{"side"}
		case !hasHeight && strings.EqualFold(strings.TrimSpace(name), "square"):
			keys = []string{"width"}
		default:
			keys = []string{"width", "height"}
		}
	}

	dims := make([]float64, 0, len(keys))
	for _, key := range keys {
		f, err := getFloat(m, key)
		if err != nil {
			return nil, err
		}
		dims = append(dims, f)
	}
	return dims, nil
}

// logObject provides log.Info/Warn/Error methods for Risor scripts.
type logObject struct {
	logger *slog.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg)
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg)
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg)
}
