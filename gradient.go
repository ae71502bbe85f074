package canopy

// Gradient is a non-solid fill: LinearGradient, RadialGradient or
// PatternGradient. Its document form is an object tagged by "type".
type Gradient interface {
	GradientType() string
	toObject() map[string]any
}

// ColorStop positions a color along a gradient, Position in [0, 1].
type ColorStop struct {
	Position float64
	Color    string
}

// LinearGradient blends color stops along the segment Start to End.
type LinearGradient struct {
	Start, End Point2D
	Stops      []ColorStop
}

// NewLinearGradient returns a gradient from start to end with no stops.
func NewLinearGradient(start, end Point2D) *LinearGradient {
	return &LinearGradient{Start: start, End: end}
}

// GradientType returns "LinearGradient".
func (g *LinearGradient) GradientType() string { return "LinearGradient" }

// AddColorStop appends a stop and returns g for chaining.
func (g *LinearGradient) AddColorStop(position float64, color string) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Position: position, Color: color})
	return g
}

func (g *LinearGradient) toObject() map[string]any {
	return map[string]any{
		"type":       g.GradientType(),
		"start":      g.Start.toObject(),
		"end":        g.End.toObject(),
		"colorStops": stopsToArray(g.Stops),
	}
}

// RadialGradient blends color stops between two circles.
type RadialGradient struct {
	Start, End             Point2D
	StartRadius, EndRadius float64
	Stops                  []ColorStop
}

// NewRadialGradient returns a gradient between the circle at start with
// startRadius and the circle at end with endRadius.
func NewRadialGradient(start Point2D, startRadius float64, end Point2D, endRadius float64) *RadialGradient {
	return &RadialGradient{Start: start, StartRadius: startRadius, End: end, EndRadius: endRadius}
}

// GradientType returns "RadialGradient".
func (g *RadialGradient) GradientType() string { return "RadialGradient" }

// AddColorStop appends a stop and returns g for chaining.
func (g *RadialGradient) AddColorStop(position float64, color string) *RadialGradient {
	g.Stops = append(g.Stops, ColorStop{Position: position, Color: color})
	return g
}

func (g *RadialGradient) toObject() map[string]any {
	return map[string]any{
		"type":       g.GradientType(),
		"start":      map[string]any{"x": g.Start.X, "y": g.Start.Y, "radius": g.StartRadius},
		"end":        map[string]any{"x": g.End.X, "y": g.End.Y, "radius": g.EndRadius},
		"colorStops": stopsToArray(g.Stops),
	}
}

// PatternGradient fills with an image resource. Repeat is one of "repeat",
// "repeat-x", "repeat-y" or "no-repeat"; empty means "repeat".
type PatternGradient struct {
	URL    string
	Repeat string
}

// GradientType returns "PatternGradient".
func (g *PatternGradient) GradientType() string { return "PatternGradient" }

func (g *PatternGradient) toObject() map[string]any {
	obj := map[string]any{"type": g.GradientType(), "url": g.URL}
	if g.Repeat != "" {
		obj["repeat"] = g.Repeat
	}
	return obj
}

func stopsToArray(stops []ColorStop) []any {
	arr := make([]any, len(stops))
	for i, s := range stops {
		arr[i] = map[string]any{"position": s.Position, "color": s.Color}
	}
	return arr
}

func stopsFromValue(v any) []ColorStop {
	arr, _ := v.([]any)
	stops := make([]ColorStop, 0, len(arr))
	for _, e := range arr {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		color, _ := obj["color"].(string)
		stops = append(stops, ColorStop{Position: numberOr(obj["position"], 0), Color: color})
	}
	return stops
}

// gradientFromValue decodes a gradient object by its "type" tag. Unknown or
// malformed objects yield nil.
func gradientFromValue(v any) Gradient {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	tag, _ := obj["type"].(string)
	switch tag {
	case "LinearGradient":
		start, _ := pointFromValue(obj["start"])
		end, _ := pointFromValue(obj["end"])
		return &LinearGradient{Start: start, End: end, Stops: stopsFromValue(obj["colorStops"])}
	case "RadialGradient":
		start, _ := pointFromValue(obj["start"])
		end, _ := pointFromValue(obj["end"])
		g := &RadialGradient{Start: start, End: end, Stops: stopsFromValue(obj["colorStops"])}
		if s, ok := obj["start"].(map[string]any); ok {
			g.StartRadius = numberOr(s["radius"], 0)
		}
		if e, ok := obj["end"].(map[string]any); ok {
			g.EndRadius = numberOr(e["radius"], 0)
		}
		return g
	case "PatternGradient":
		url, _ := obj["url"].(string)
		repeat, _ := obj["repeat"].(string)
		return &PatternGradient{URL: url, Repeat: repeat}
	}
	return nil
}

// Shadow describes a drop shadow.
type Shadow struct {
	Color  string
	Blur   float64
	Offset Point2D
	OnFill bool
}

func (s *Shadow) toObject() map[string]any {
	return map[string]any{
		"color":  s.Color,
		"blur":   s.Blur,
		"offset": s.Offset.toObject(),
		"onFill": s.OnFill,
	}
}

func shadowFromValue(v any) *Shadow {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	color, _ := obj["color"].(string)
	offset, _ := pointFromValue(obj["offset"])
	onFill, _ := obj["onFill"].(bool)
	return &Shadow{Color: color, Blur: numberOr(obj["blur"], 0), Offset: offset, OnFill: onFill}
}

// DragBounds limits where a draggable node may be moved.
type DragBounds struct {
	X1, Y1, X2, Y2 float64
}

func (b *DragBounds) toObject() map[string]any {
	return map[string]any{"x1": b.X1, "y1": b.Y1, "x2": b.X2, "y2": b.Y2}
}

func dragBoundsFromValue(v any) *DragBounds {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &DragBounds{
		X1: numberOr(obj["x1"], 0), Y1: numberOr(obj["y1"], 0),
		X2: numberOr(obj["x2"], 0), Y2: numberOr(obj["y2"], 0),
	}
}
