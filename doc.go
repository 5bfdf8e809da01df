// Package tagalong models shapes as a closed union over a shared capability
// set and computes metrics that only need that capability set.
//
// # Model
//
// [Geometry] is the capability set: Area and Perimeter. [Shape] narrows it
// to the two known variants, [Rectangle] and [Circle], each tagged with a
// [Kind]. Code that needs variant-specific fields, such as [DetectCircle],
// switches over the union instead of probing for methods.
//
// # Usage
//
//	rect := tagalong.Rectangle{Width: 1, Height: 4}
//	eff, err := tagalong.Efficiency(rect) // 0.4
//	if errors.Is(err, tagalong.ErrDivisionByZero) { ... }
//
//	r, ok := tagalong.DetectCircle(tagalong.Circle{Radius: 4}) // 4, true
//
// Shapes built with [NewShape] are pointers and can be resized in place
// with Scale:
//
//	s, _ := tagalong.NewShape(tagalong.KindRectangle, 12.7, 10)
//	s.(*tagalong.Rectangle).Scale(1 / 25.4) // millimetres to inches
//
// # Scripts
//
// The same operations are exposed to Risor scripts by the internal/runtime
// package; see scripts/demo.risor for the bundled demonstration.
package tagalong
