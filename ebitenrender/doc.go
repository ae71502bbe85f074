// Package ebitenrender draws canopy scene graphs with Ebitengine.
//
// [Canvas] implements canopy.Context2D on top of ebiten.Image. Paths are
// flattened in device space, filled by ear clipping and stroked into
// triangle meshes submitted through DrawTriangles. Text uses the Go fonts
// through text/v2.
//
// [Game] adapts a viewport to ebiten.Game. It renders into an offscreen
// image only after a layer calls BatchDraw, and [Loader] decodes images in
// the background so Pictures become ready between frames. [Run] wires both
// up and opens a window:
//
//	v := canopy.NewViewport(640, 480)
//	// build the tree...
//	if err := ebitenrender.Run(v, ebitenrender.RunConfig{Title: "demo"}); err != nil {
//		log.Fatal(err)
//	}
package ebitenrender
