package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
)

// GeoM converts a canopy transform into an ebiten.GeoM.
func GeoM(t canopy.Transform) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t[0])
	m.SetElement(1, 0, t[1])
	m.SetElement(0, 1, t[2])
	m.SetElement(1, 1, t[3])
	m.SetElement(0, 2, t[4])
	m.SetElement(1, 2, t[5])
	return m
}
