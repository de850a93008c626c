package main

import (
	"github.com/delaneyj/geomtoy/cmd/geomtoy/templates"
	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/delaneyj/geomtoy/shapes"
)

// buildScene wires a midpoint, a circle following it and a polygon centroid.
func buildScene(w *geomtoy.World) error {
	a := shapes.NewPoint(w, 0, 0)
	a.SetLabel("a")
	b := shapes.NewPoint(w, 4, 2)
	b.SetLabel("b")
	m := shapes.NewPoint(w, 0, 0)
	m.SetLabel("midpoint")
	c := shapes.NewCircle(w, 0, 0, 1)
	c.SetLabel("circle")
	poly := shapes.NewPolygon(w, [2]float64{0, 0}, [2]float64{2, 0}, [2]float64{1, 2})
	poly.SetLabel("polygon")
	centroid := shapes.NewPoint(w, 0, 0)
	centroid.SetLabel("centroid")

	if _, err := shapes.BindMidpoint(m, a, b); err != nil {
		return err
	}
	if _, err := shapes.BindCircleCenter(c, m); err != nil {
		return err
	}
	if _, err := shapes.BindCentroid(centroid, poly); err != nil {
		return err
	}
	return nil
}

// sceneGraph describes every live target of w and the handlers installed on it.
func sceneGraph(name string, w *geomtoy.World) *templates.Graph {
	g := &templates.Graph{Name: name}
	for _, t := range w.Targets() {
		handlers := t.Handlers()
		g.Nodes = append(g.Nodes, templates.Node{
			ID:       t.UUID(),
			Label:    t.String(),
			Events:   t.Events().Names(),
			Handlers: len(handlers),
		})
		for _, h := range handlers {
			g.Edges = append(g.Edges, templates.Edge{
				From:     t.UUID(),
				To:       h.Context.UUID(),
				Pattern:  h.Pattern,
				Callback: h.Callback,
				Priority: h.Priority,
				Self:     h.Self,
			})
		}
	}
	return g
}
