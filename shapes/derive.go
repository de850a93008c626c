package shapes

import "github.com/delaneyj/geomtoy/geomtoy"

// BindMidpoint keeps m at the midpoint of a and b. The returned callback can
// be passed to Unbind.
func BindMidpoint(m, a, b *Point, opts ...geomtoy.HandlerOption) (*geomtoy.Callback, error) {
	cb := geomtoy.NewCallback("midpoint", func([]geomtoy.Event) {
		report(m.EventTarget, "midpoint", m.SetXY((a.x+b.x)/2, (a.y+b.y)/2))
	})
	pairs := []geomtoy.Pair{
		geomtoy.Watch(a, geomtoy.AnyWildcard),
		geomtoy.Watch(b, geomtoy.AnyWildcard),
	}
	if err := m.Bind(pairs, cb, opts...); err != nil {
		return nil, err
	}
	return cb, nil
}

// BindCircleCenter keeps the center of c on p.
func BindCircleCenter(c *Circle, p *Point, opts ...geomtoy.HandlerOption) (*geomtoy.Callback, error) {
	cb := geomtoy.NewCallback("circle-center", func([]geomtoy.Event) {
		report(c.EventTarget, "circle-center", c.SetCenter(p.x, p.y))
	})
	if err := c.Bind([]geomtoy.Pair{geomtoy.Watch(p, geomtoy.AnyWildcard)}, cb, opts...); err != nil {
		return nil, err
	}
	return cb, nil
}

// BindCentroid keeps p on the centroid of poly.
func BindCentroid(p *Point, poly *Polygon, opts ...geomtoy.HandlerOption) (*geomtoy.Callback, error) {
	cb := geomtoy.NewCallback("centroid", func([]geomtoy.Event) {
		x, y := poly.Centroid()
		report(p.EventTarget, "centroid", p.SetXY(x, y))
	})
	if err := p.Bind([]geomtoy.Pair{geomtoy.Watch(poly, geomtoy.AnyWildcard)}, cb, opts...); err != nil {
		return nil, err
	}
	return cb, nil
}

// BindCopy makes dst follow src.
func BindCopy(dst, src *Point, opts ...geomtoy.HandlerOption) (*geomtoy.Callback, error) {
	cb := geomtoy.NewCallback("copy", func([]geomtoy.Event) {
		report(dst.EventTarget, "copy", dst.SetXY(src.x, src.y))
	})
	if err := dst.Bind([]geomtoy.Pair{geomtoy.Watch(src, geomtoy.AnyWildcard)}, cb, opts...); err != nil {
		return nil, err
	}
	return cb, nil
}

// report logs a derived value the target refused, typically one that
// overflowed to infinity. The target keeps its previous value.
func report(t *geomtoy.EventTarget, derivation string, err error) {
	if err == nil {
		return
	}
	t.World().Logger().Warn("shapes: derived update rejected",
		"target", t.String(),
		"derivation", derivation,
		"err", err,
	)
}
