package game

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Faultbox/tetris-clone/internal/config"
	"github.com/Faultbox/tetris-clone/internal/engine/renderer"
	"github.com/Faultbox/tetris-clone/internal/engine/window"
)

// recorder collects lifecycle calls across fakes in order.
type recorder struct {
	calls []string
}

func (r *recorder) add(call string) {
	r.calls = append(r.calls, call)
}

type fakeWindow struct {
	rec    *recorder
	frames [][]window.Event // events returned per PollEvents call
	quit   bool
	swaps  int
}

func (w *fakeWindow) PollEvents() []window.Event {
	if len(w.frames) == 0 {
		w.quit = true
		return []window.Event{{Type: window.EventQuit}}
	}
	evs := w.frames[0]
	w.frames = w.frames[1:]
	for _, ev := range evs {
		if ev.Type == window.EventQuit {
			w.quit = true
		}
	}
	return evs
}

func (w *fakeWindow) ShouldClose() bool { return w.quit }
func (w *fakeWindow) SwapBuffers()      { w.swaps++ }
func (w *fakeWindow) Size() (int, int)  { return 320, 240 }
func (w *fakeWindow) SetSize(int, int)  {}
func (w *fakeWindow) SetTitle(string)   {}
func (w *fakeWindow) Close()            { w.rec.add("window.Close") }

type fakeScene struct {
	rec     *recorder
	cfg     renderer.Config
	draws   int
	resizes [][2]int
}

func (s *fakeScene) Draw()                    { s.draws++ }
func (s *fakeScene) Resize(width, height int) { s.resizes = append(s.resizes, [2]int{width, height}) }
func (s *fakeScene) Close()                   { s.rec.add("renderer.Close") }

// stub swaps the constructors for fakes and restores them after the test.
func stub(t *testing.T, win *fakeWindow, winErr error, sc *fakeScene, scErr error) {
	t.Helper()
	origWindow, origScene := newWindow, newScene
	t.Cleanup(func() {
		newWindow, newScene = origWindow, origScene
	})

	newWindow = func(window.Config) (window.Window, error) {
		if winErr != nil {
			return nil, winErr
		}
		return win, nil
	}
	newScene = func(cfg renderer.Config) (scene, error) {
		if scErr != nil {
			return nil, scErr
		}
		sc.cfg = cfg
		return sc, nil
	}
}

func TestNewAndCloseOrder(t *testing.T) {
	rec := &recorder{}
	win := &fakeWindow{rec: rec}
	sc := &fakeScene{rec: rec}
	stub(t, win, nil, sc, nil)

	g, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Renderer starts from the drawable size, not the requested size
	if sc.cfg.Width != 320 || sc.cfg.Height != 240 {
		t.Errorf("renderer got %dx%d, want 320x240", sc.cfg.Width, sc.cfg.Height)
	}

	g.Close()
	g.Close()

	want := []string{"renderer.Close", "window.Close"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("close calls = %v, want %v", rec.calls, want)
	}
}

func TestNewRendererFailureClosesWindow(t *testing.T) {
	rec := &recorder{}
	errShader := errors.New("shader failed")
	stub(t, &fakeWindow{rec: rec}, nil, &fakeScene{rec: rec}, errShader)

	g, err := New(config.Default())
	if !errors.Is(err, errShader) {
		t.Fatalf("expected shader error, got %v", err)
	}
	if g != nil {
		t.Error("expected nil game on failure")
	}

	want := []string{"window.Close"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("close calls = %v, want %v", rec.calls, want)
	}
}

func TestNewWindowFailureReleasesNothing(t *testing.T) {
	rec := &recorder{}
	errInit := errors.New("no display")
	stub(t, nil, errInit, &fakeScene{rec: rec}, nil)

	if _, err := New(config.Default()); !errors.Is(err, errInit) {
		t.Fatalf("expected window error, got %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("expected no releases, got %v", rec.calls)
	}
}

func TestRunDrawsUntilQuit(t *testing.T) {
	rec := &recorder{}
	win := &fakeWindow{
		rec: rec,
		frames: [][]window.Event{
			nil,
			{{Type: window.EventResize, Width: 1024, Height: 768}},
			nil,
			{{Type: window.EventQuit}},
		},
	}
	sc := &fakeScene{rec: rec}
	stub(t, win, nil, sc, nil)

	g, err := New(config.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer g.Close()

	if err := g.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Three frames before the quit frame
	if sc.draws != 3 {
		t.Errorf("draws = %d, want 3", sc.draws)
	}
	if win.swaps != 3 {
		t.Errorf("swaps = %d, want 3", win.swaps)
	}
	if want := [][2]int{{1024, 768}}; !reflect.DeepEqual(sc.resizes, want) {
		t.Errorf("resizes = %v, want %v", sc.resizes, want)
	}
}

func TestTeardownOrder(t *testing.T) {
	var td teardown
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		td.push(name, func() { order = append(order, name) })
	}

	if td.len() != 3 {
		t.Errorf("len = %d, want 3", td.len())
	}

	td.run()
	td.run()

	if want := []string{"c", "b", "a"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if td.len() != 0 {
		t.Errorf("len after run = %d, want 0", td.len())
	}
}

func TestTeardownReleaseCanPush(t *testing.T) {
	// A release that registers more work still has it run in the same unwind.
	var td teardown
	var order []string
	td.push("outer", func() {
		order = append(order, "outer")
		td.push("late", func() { order = append(order, "late") })
	})

	td.run()

	if want := []string{"outer", "late"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}
