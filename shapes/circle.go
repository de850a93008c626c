package shapes

import (
	"fmt"
	"math"

	"github.com/delaneyj/geomtoy/geomtoy"
)

const (
	EventCenterX = "centerX"
	EventCenterY = "centerY"
	EventRadius  = "radius"
)

// CircleEvents are the events a Circle declares.
var CircleEvents = geomtoy.DeclareEvents(EventCenterX, EventCenterY, EventRadius)

// Circle is a reactive circle.
type Circle struct {
	*geomtoy.EventTarget
	centerX, centerY, radius float64
}

// NewCircle creates a circle in w. A negative radius is stored as its
// absolute value; non-finite values are stored as given and only the setters
// reject them.
func NewCircle(w *geomtoy.World, centerX, centerY, radius float64) *Circle {
	return &Circle{
		EventTarget: geomtoy.NewEventTarget(w, CircleEvents),
		centerX:     centerX,
		centerY:     centerY,
		radius:      math.Abs(radius),
	}
}

func (c *Circle) CenterX() float64 { return c.centerX }
func (c *Circle) CenterY() float64 { return c.centerY }
func (c *Circle) Radius() float64  { return c.radius }

func (c *Circle) SetCenterX(v float64) error {
	return c.set(&c.centerX, v, EventCenterX)
}

func (c *Circle) SetCenterY(v float64) error {
	return c.set(&c.centerY, v, EventCenterY)
}

// SetCenter moves the center. Nothing changes unless both are finite.
func (c *Circle) SetCenter(x, y float64) error {
	if err := finite(EventCenterX, x); err != nil {
		return err
	}
	if err := finite(EventCenterY, y); err != nil {
		return err
	}
	assign(c.EventTarget, &c.centerX, x, EventCenterX)
	assign(c.EventTarget, &c.centerY, y, EventCenterY)
	return nil
}

func (c *Circle) SetRadius(v float64) error {
	if v < 0 {
		return fmt.Errorf("radius=%v: %w", v, ErrNegativeRadius)
	}
	return c.set(&c.radius, v, EventRadius)
}

// Area returns the area.
func (c *Circle) Area() float64 {
	return math.Pi * c.radius * c.radius
}

func (c *Circle) set(field *float64, v float64, event string) error {
	if err := finite(event, v); err != nil {
		return err
	}
	assign(c.EventTarget, field, v, event)
	return nil
}
