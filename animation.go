package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 numeric attributes on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenAlpha, TweenRotation, TweenAttribute) and call Update(dt) each frame.
// The group writes the attributes and requests a redraw of the node's layer.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	set    [4]func(float64)
	target Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// attributes, and schedules a layer redraw.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.set[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if l := g.target.Layer(); l != nil {
		l.BatchDraw()
	}
}

func (g *TweenGroup) add(from, to float64, duration float32, fn ease.TweenFunc, set func(float64)) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.set[g.count] = set
	g.count++
}

// TweenPosition animates the X and Y attributes to the given coordinates.
func TweenPosition(node Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	a := node.Attributes()
	g := &TweenGroup{target: node}
	g.add(a.X(), toX, duration, fn, a.SetX)
	g.add(a.Y(), toY, duration, fn, a.SetY)
	return g
}

// TweenScale animates the scale attribute to (toSX, toSY).
func TweenScale(node Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	a := node.Attributes()
	s := a.Scale()
	g := &TweenGroup{target: node}
	g.add(s.X, toSX, duration, fn, func(v float64) { a.SetScale(v, a.Scale().Y) })
	g.add(s.Y, toSY, duration, fn, func(v float64) { a.SetScale(a.Scale().X, v) })
	return g
}

// TweenAlpha animates the alpha attribute.
func TweenAlpha(node Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	a := node.Attributes()
	g := &TweenGroup{target: node}
	g.add(a.Alpha(), to, duration, fn, a.SetAlpha)
	return g
}

// TweenRotation animates the rotation attribute, in radians.
func TweenRotation(node Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	a := node.Attributes()
	g := &TweenGroup{target: node}
	g.add(a.Rotation(), to, duration, fn, a.SetRotation)
	return g
}

// TweenAttribute animates any numeric attribute. An undefined attribute
// starts from 0.
func TweenAttribute(node Node, attr *Attribute, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	a := node.Attributes()
	g := &TweenGroup{target: node}
	g.add(a.getNumber(attr, 0), to, duration, fn, func(v float64) { a.setNumber(attr, v) })
	return g
}
