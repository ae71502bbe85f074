package ebitenrender

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/canopy"
)

// Loader loads images from disk in the background and implements both
// canopy.ImageLoader and ImageSource. Completion callbacks are queued and
// run by Poll, so node state only changes on the goroutine that draws.
type Loader struct {
	mu      sync.Mutex
	images  map[string]*ebiten.Image
	pending []func()
	wg      sync.WaitGroup

	open func(path string) (*ebiten.Image, error)
}

var (
	_ canopy.ImageLoader = (*Loader)(nil)
	_ ImageSource        = (*Loader)(nil)
)

// NewLoader returns a loader reading files with ebitenutil.
func NewLoader() *Loader {
	return &Loader{
		images: make(map[string]*ebiten.Image),
		open: func(path string) (*ebiten.Image, error) {
			img, _, err := ebitenutil.NewImageFromFile(path)
			return img, err
		},
	}
}

// Add registers an already decoded image under url.
func (l *Loader) Add(url string, img *ebiten.Image) {
	l.mu.Lock()
	l.images[url] = img
	l.mu.Unlock()
}

// Load starts loading url. ready runs from a later Poll call, with nil on
// success. Cached images complete on the next Poll without reloading.
func (l *Loader) Load(url string, ready func(err error)) {
	l.mu.Lock()
	if _, ok := l.images[url]; ok {
		l.pending = append(l.pending, func() { ready(nil) })
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.open(url)
		l.mu.Lock()
		if err == nil {
			l.images[url] = img
		}
		l.pending = append(l.pending, func() { ready(err) })
		l.mu.Unlock()
	}()
}

// Wait blocks until every started load has finished. Their callbacks still
// need a Poll.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Poll runs the queued completion callbacks and returns how many ran.
func (l *Loader) Poll() int {
	l.mu.Lock()
	done := l.pending
	l.pending = nil
	l.mu.Unlock()
	for _, fn := range done {
		fn()
	}
	return len(done)
}

// Image returns the loaded image for url, or nil.
func (l *Loader) Image(url string) *ebiten.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.images[url]
}
