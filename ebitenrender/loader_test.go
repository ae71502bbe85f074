package ebitenrender

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

var errNoFile = errors.New("no such file")

// stubLoader returns a loader whose open succeeds for "ok.png" and counts
// calls.
func stubLoader(opens *atomic.Int32) *Loader {
	l := NewLoader()
	l.open = func(path string) (*ebiten.Image, error) {
		opens.Add(1)
		if path == "ok.png" {
			return ebiten.NewImage(2, 2), nil
		}
		return nil, errNoFile
	}
	return l
}

func TestLoaderLoadAndPoll(t *testing.T) {
	var opens atomic.Int32
	l := stubLoader(&opens)

	var got []error
	l.Load("ok.png", func(err error) { got = append(got, err) })
	l.Load("missing.png", func(err error) { got = append(got, err) })
	l.Wait()

	if len(got) != 0 {
		t.Fatal("callbacks ran before Poll")
	}
	if n := l.Poll(); n != 2 {
		t.Fatalf("Poll ran %d callbacks, want 2", n)
	}
	var ok, failed int
	for _, err := range got {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, errNoFile):
			failed++
		}
	}
	if ok != 1 || failed != 1 {
		t.Errorf("results = %v", got)
	}
	if l.Image("ok.png") == nil {
		t.Error("loaded image not cached")
	}
	if l.Image("missing.png") != nil {
		t.Error("failed image cached")
	}
	if n := l.Poll(); n != 0 {
		t.Errorf("second Poll ran %d callbacks", n)
	}
}

func TestLoaderCachedImage(t *testing.T) {
	var opens atomic.Int32
	l := stubLoader(&opens)
	l.Add("atlas.png", ebiten.NewImage(4, 4))

	called := false
	l.Load("atlas.png", func(err error) {
		if err != nil {
			t.Errorf("cached load err = %v", err)
		}
		called = true
	})
	l.Poll()
	if !called {
		t.Error("cached load did not complete on Poll")
	}
	if opens.Load() != 0 {
		t.Errorf("cached image reopened %d times", opens.Load())
	}
}
