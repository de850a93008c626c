package shapes

import (
	"fmt"
	"slices"

	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/delaneyj/geomtoy/maths"
	"github.com/google/uuid"
)

const (
	EventVertexAdded   = "vertexAdded"
	EventVertexRemoved = "vertexRemoved"
	EventVertexChanged = "vertexChanged"
)

// PolygonEvents are the events a Polygon declares. All of them are
// collection events carrying the vertex index and id.
var PolygonEvents = geomtoy.DeclareEvents(EventVertexAdded, EventVertexRemoved, EventVertexChanged)

// Vertex is one polygon corner. ID stays the same while the vertex lives.
type Vertex struct {
	ID   string
	X, Y float64
}

// Polygon is a reactive closed polyline.
type Polygon struct {
	*geomtoy.EventTarget
	vertices []Vertex
}

// NewPolygon creates a polygon in w from (x, y) coordinate pairs. The
// coordinates are stored as given, only AppendVertex and SetVertex reject
// non-finite values.
func NewPolygon(w *geomtoy.World, coords ...[2]float64) *Polygon {
	p := &Polygon{EventTarget: geomtoy.NewEventTarget(w, PolygonEvents)}
	for _, c := range coords {
		p.vertices = append(p.vertices, Vertex{ID: uuid.NewString(), X: c[0], Y: c[1]})
	}
	return p
}

// Len returns the vertex count.
func (p *Polygon) Len() int { return len(p.vertices) }

// Vertices returns a copy of the vertices.
func (p *Polygon) Vertices() []Vertex { return slices.Clone(p.vertices) }

// Vertex returns the vertex at i.
func (p *Polygon) Vertex(i int) (Vertex, error) {
	if i < 0 || i >= len(p.vertices) {
		return Vertex{}, fmt.Errorf("index %d of %d: %w", i, len(p.vertices), ErrIndexOutOfRange)
	}
	return p.vertices[i], nil
}

// AppendVertex adds a vertex at the end and returns its id.
func (p *Polygon) AppendVertex(x, y float64) (string, error) {
	if err := finite("x", x); err != nil {
		return "", err
	}
	if err := finite("y", y); err != nil {
		return "", err
	}
	v := Vertex{ID: uuid.NewString(), X: x, Y: y}
	p.vertices = append(p.vertices, v)
	p.Trigger(geomtoy.CollectionEvent(p.EventTarget, EventVertexAdded, len(p.vertices)-1, v.ID))
	return v.ID, nil
}

// RemoveVertex removes the vertex at i.
func (p *Polygon) RemoveVertex(i int) error {
	v, err := p.Vertex(i)
	if err != nil {
		return err
	}
	p.vertices = slices.Delete(p.vertices, i, i+1)
	p.Trigger(geomtoy.CollectionEvent(p.EventTarget, EventVertexRemoved, i, v.ID))
	return nil
}

// SetVertex moves the vertex at i.
func (p *Polygon) SetVertex(i int, x, y float64) error {
	v, err := p.Vertex(i)
	if err != nil {
		return err
	}
	if err := finite("x", x); err != nil {
		return err
	}
	if err := finite("y", y); err != nil {
		return err
	}
	eps := epsilonOf(p.EventTarget)
	changed := !maths.EqualTo(v.X, x, eps) || !maths.EqualTo(v.Y, y, eps)
	p.vertices[i].X, p.vertices[i].Y = x, y
	if changed {
		p.Trigger(geomtoy.CollectionEvent(p.EventTarget, EventVertexChanged, i, v.ID))
	}
	return nil
}

// Centroid returns the mean of the vertices.
func (p *Polygon) Centroid() (float64, float64) {
	if len(p.vertices) == 0 {
		return 0, 0
	}
	var sx, sy float64
	for _, v := range p.vertices {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(p.vertices))
	return sx / n, sy / n
}
