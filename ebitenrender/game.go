package ebitenrender

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/canopy"
)

// RunConfig configures Run.
type RunConfig struct {
	Title string
	// ClearColor is a CSS color painted behind the viewport. Empty means
	// transparent.
	ClearColor string
	ShowFPS    bool
	Resizable  bool
	// UpdateFunc runs once per tick. See Game.UpdateFunc.
	UpdateFunc func() error
	// ScreenshotDir enables ScreenshotKey and receives the captures.
	ScreenshotDir string
}

// Game implements ebiten.Game for a canopy viewport. It redraws the tree
// into an offscreen image only after a layer asks for it, and presents that
// image every frame.
type Game struct {
	viewport *canopy.Viewport
	loader   *Loader
	canvas   *Canvas

	offscreen *ebiten.Image
	clear     canopy.Color
	dirty     bool
	redraws   int
	showFPS   bool
	requested map[string]bool
	shots     []string
	shotKey   bool

	// UpdateFunc, if set, runs once per tick after image callbacks.
	UpdateFunc func() error
	// ScreenshotDir is where Screenshot writes PNGs. Empty means
	// "screenshots".
	ScreenshotDir string
}

var _ canopy.RedrawScheduler = (*Game)(nil)

// NewGame returns a game drawing v. loader may be nil.
func NewGame(v *canopy.Viewport, loader *Loader) *Game {
	var images ImageSource
	if loader != nil {
		images = loader
	}
	g := &Game{
		viewport:  v,
		loader:    loader,
		canvas:    NewCanvas(nil, images),
		dirty:     true,
		requested: make(map[string]bool),
	}
	if loader != nil {
		g.canvas.missing = g.fetch
	}
	return g
}

// fetch loads an image the canvas could not find, once per URL, and
// redraws when it arrives. This covers pictures created before the loader
// was installed and pattern fills.
func (g *Game) fetch(url string) {
	if g.requested[url] {
		return
	}
	g.requested[url] = true
	g.loader.Load(url, func(err error) {
		if err != nil {
			canopy.Logger().Warn("failed to load image", "url", url, "err", err)
			return
		}
		g.dirty = true
	})
}

// SetClearColor sets the background color. Invalid colors are an error.
func (g *Game) SetClearColor(css string) error {
	if css == "" {
		g.clear = canopy.Color{}
		return nil
	}
	c, err := canopy.ParseColor(css)
	if err != nil {
		return err
	}
	g.clear = c
	g.dirty = true
	return nil
}

// ScheduleRedraw marks the frame dirty. The layer is only used for
// diagnostics; the whole viewport is redrawn.
func (g *Game) ScheduleRedraw(l *canopy.Layer) {
	if !g.dirty {
		canopy.Logger().Debug("redraw scheduled", "layer", l.Attributes().ID())
	}
	g.dirty = true
}

// Dirty reports whether a redraw is pending.
func (g *Game) Dirty() bool { return g.dirty }

// Redraws returns how many times the tree has been rendered.
func (g *Game) Redraws() int { return g.redraws }

// Canvas returns the canvas the tree is rendered with.
func (g *Game) Canvas() *Canvas { return g.canvas }

// Update runs image callbacks, the screenshot key and UpdateFunc.
func (g *Game) Update() error {
	if g.loader != nil {
		g.loader.Poll()
	}
	if g.shotKey && inpututil.IsKeyJustPressed(ScreenshotKey) {
		g.Screenshot("key")
	}
	if g.UpdateFunc != nil {
		return g.UpdateFunc()
	}
	return nil
}

// Draw renders the viewport if dirty and presents it.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.size()
	if g.offscreen == nil || g.offscreen.Bounds().Dx() != w || g.offscreen.Bounds().Dy() != h {
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(w, h)
		g.dirty = true
	}
	if g.dirty {
		g.render(g.offscreen)
	}
	g.flushScreenshots(g.offscreen)
	screen.DrawImage(g.offscreen, nil)
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// render draws the whole tree into dst.
func (g *Game) render(dst *ebiten.Image) {
	dst.Clear()
	if g.clear.A > 0 {
		dst.Fill(g.clear)
	}
	g.canvas.Reset(dst)
	canopy.Render(g.canvas, g.viewport)
	g.dirty = false
	g.redraws++
}

func (g *Game) size() (int, int) {
	w, h := int(g.viewport.Width()), int(g.viewport.Height())
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Layout returns the viewport size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.size()
}

// Run opens a window showing v and blocks until it closes. It installs a
// Loader as the image loader and the game as the redraw scheduler.
func Run(v *canopy.Viewport, cfg RunConfig) error {
	loader := NewLoader()
	g := NewGame(v, loader)
	if err := g.SetClearColor(cfg.ClearColor); err != nil {
		return fmt.Errorf("ebitenrender: clear color: %w", err)
	}
	g.showFPS = cfg.ShowFPS
	g.UpdateFunc = cfg.UpdateFunc
	if cfg.ScreenshotDir != "" {
		g.ScreenshotDir = cfg.ScreenshotDir
		g.shotKey = true
	}

	canopy.SetImageLoader(loader)
	canopy.SetRedrawScheduler(g)
	defer canopy.SetImageLoader(nil)
	defer canopy.SetRedrawScheduler(nil)

	w, h := g.size()
	ebiten.SetWindowSize(w, h)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(g)
}
