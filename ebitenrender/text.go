package ebitenrender

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/canopy"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

type faceKey struct {
	bold, italic bool
	size         float64
}

// textCache holds Go font sources and faces by style and size.
type textCache struct {
	sources map[faceKey]*text.GoTextFaceSource
	faces   map[faceKey]*text.GoTextFace
}

func newTextCache() *textCache {
	return &textCache{
		sources: make(map[faceKey]*text.GoTextFaceSource),
		faces:   make(map[faceKey]*text.GoTextFace),
	}
}

// parseFont reads a CSS-like font string such as "bold 24px Helvetica".
// Unknown parts are ignored; a missing size yields 0.
func parseFont(font string) (key faceKey) {
	for _, f := range strings.Fields(strings.ToLower(font)) {
		switch {
		case f == "bold" || f == "bolder":
			key.bold = true
		case f == "italic" || f == "oblique":
			key.italic = true
		case strings.HasSuffix(f, "px"):
			if v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64); err == nil && v > 0 {
				key.size = v
			}
		}
	}
	return key
}

func (tc *textCache) face(font string) *text.GoTextFace {
	key := parseFont(font)
	if key.size == 0 {
		key.size = canopy.CurrentDefaults().FontSize
	}
	if f, ok := tc.faces[key]; ok {
		return f
	}
	skey := faceKey{bold: key.bold, italic: key.italic}
	src, ok := tc.sources[skey]
	if !ok {
		ttf := goregular.TTF
		switch {
		case key.bold && key.italic:
			ttf = gobolditalic.TTF
		case key.bold:
			ttf = gobold.TTF
		case key.italic:
			ttf = goitalic.TTF
		}
		var err error
		src, err = text.NewGoTextFaceSource(bytes.NewReader(ttf))
		if err != nil {
			canopy.Logger().Error("failed to parse built-in font", "err", err)
			return nil
		}
		tc.sources[skey] = src
	}
	f := &text.GoTextFace{Source: src, Size: key.size}
	tc.faces[key] = f
	return f
}

func primaryAlign(align string) text.Align {
	switch align {
	case "center":
		return text.AlignCenter
	case "right", "end":
		return text.AlignEnd
	}
	return text.AlignStart
}

// draw renders s so that (x, y) is the anchor given by align and baseline,
// in the coordinate space of ctm.
func (tc *textCache) draw(dst *ebiten.Image, s string, x, y float64, font, align, baseline string, ctm canopy.Transform, col canopy.Color) {
	face := tc.face(font)
	if face == nil {
		return
	}
	m := face.Metrics()

	op := &text.DrawOptions{}
	op.PrimaryAlign = primaryAlign(align)
	switch baseline {
	case "top", "hanging":
		op.SecondaryAlign = text.AlignStart
	case "middle":
		op.SecondaryAlign = text.AlignCenter
	case "bottom", "ideographic":
		op.SecondaryAlign = text.AlignEnd
	default:
		// Alphabetic: y is the baseline.
		op.SecondaryAlign = text.AlignStart
		y -= m.HAscent
	}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(GeoM(ctm))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(dst, s, face, op)
}
