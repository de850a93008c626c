// Package shapes holds small reactive shapes built on geomtoy. Setters compare
// against the world epsilon and trigger only on genuine change.
package shapes

import (
	"errors"
	"fmt"

	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/delaneyj/geomtoy/maths"
)

var (
	// ErrNotFinite is returned when a coordinate or length is NaN or infinite.
	ErrNotFinite = errors.New("shapes: value is not finite")
	// ErrNegativeRadius is returned by Circle.SetRadius for radii below zero.
	ErrNegativeRadius = errors.New("shapes: radius cannot be negative")
	// ErrIndexOutOfRange is returned by Polygon vertex accessors.
	ErrIndexOutOfRange = errors.New("shapes: vertex index out of range")
)

const (
	EventX = "x"
	EventY = "y"
)

// PointEvents are the events a Point declares.
var PointEvents = geomtoy.DeclareEvents(EventX, EventY)

// Point is a reactive 2D point.
type Point struct {
	*geomtoy.EventTarget
	x, y float64
}

// NewPoint creates a point in w. The coordinates are stored as given, only
// the setters reject non-finite values.
func NewPoint(w *geomtoy.World, x, y float64) *Point {
	return &Point{
		EventTarget: geomtoy.NewEventTarget(w, PointEvents),
		x:           x,
		y:           y,
	}
}

func (p *Point) X() float64 { return p.x }
func (p *Point) Y() float64 { return p.y }

// SetX sets the x coordinate.
func (p *Point) SetX(x float64) error {
	if err := finite("x", x); err != nil {
		return err
	}
	assign(p.EventTarget, &p.x, x, EventX)
	return nil
}

// SetY sets the y coordinate.
func (p *Point) SetY(y float64) error {
	if err := finite("y", y); err != nil {
		return err
	}
	assign(p.EventTarget, &p.y, y, EventY)
	return nil
}

// SetXY sets both coordinates. Nothing changes unless both are finite.
func (p *Point) SetXY(x, y float64) error {
	if err := finite("x", x); err != nil {
		return err
	}
	if err := finite("y", y); err != nil {
		return err
	}
	assign(p.EventTarget, &p.x, x, EventX)
	assign(p.EventTarget, &p.y, y, EventY)
	return nil
}

// Coordinates returns x and y.
func (p *Point) Coordinates() (float64, float64) { return p.x, p.y }

func finite(name string, v float64) error {
	if !maths.IsFinite(v) {
		return fmt.Errorf("%s=%v: %w", name, v, ErrNotFinite)
	}
	return nil
}

// assign stores v and triggers event when it differs from the old value by
// more than the world epsilon.
func assign(t *geomtoy.EventTarget, field *float64, v float64, event string) {
	changed := !maths.EqualTo(*field, v, epsilonOf(t))
	*field = v
	if changed {
		t.Trigger(geomtoy.SimpleEvent(t, event))
	}
}

func epsilonOf(t *geomtoy.EventTarget) float64 {
	return t.World().Options().Epsilon()
}
