package pipeline

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stared/fourious/internal/config"
	"github.com/stared/fourious/internal/source"
	"github.com/stared/fourious/internal/spectral"
)

// stubSource is a scriptable frame source for pipeline tests.
type stubSource struct {
	frames   [][]float64
	next     int
	startErr error
	started  bool
	stopped  bool
}

func (s *stubSource) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	return nil
}

func (s *stubSource) Stop() error {
	s.stopped = true
	return nil
}

func (s *stubSource) Frame() []float64 {
	if s.next >= len(s.frames) {
		return nil
	}
	f := s.frames[s.next]
	s.next++
	return f
}

func (s *stubSource) Range() source.Range { return source.RangeByte }
func (s *stubSource) Describe() string    { return "stub" }

func newTestPipeline(t *testing.T, src source.Source) *Pipeline {
	t.Helper()
	p, err := New(src, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPipelineLifecycle(t *testing.T) {
	src := &stubSource{frames: [][]float64{{1, 2, 3}}}
	p := newTestPipeline(t, src)

	if p.State() != Idle {
		t.Fatalf("expected Idle, got %v", p.State())
	}
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	if p.State() != Running || !src.started {
		t.Fatalf("expected Running with source started, got %v", p.State())
	}

	p.TogglePause()
	if p.State() != Paused {
		t.Fatalf("expected Paused, got %v", p.State())
	}
	p.TogglePause()
	if p.State() != Running {
		t.Fatalf("expected Running after resume, got %v", p.State())
	}

	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}
	if p.State() != Stopped || !src.stopped {
		t.Fatalf("expected Stopped with source stopped, got %v", p.State())
	}
}

func TestPipelineStartFailureStaysIdle(t *testing.T) {
	src := &stubSource{startErr: errors.New("no device")}
	p := newTestPipeline(t, src)

	if err := p.Start(); err == nil {
		t.Fatal("expected start error")
	}
	if p.State() != Idle {
		t.Fatalf("expected pipeline to stay Idle after failure, got %v", p.State())
	}
}

func TestPipelineTickRendersFrame(t *testing.T) {
	src := &stubSource{frames: [][]float64{{0, 255, 128}}}
	p := newTestPipeline(t, src)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	p.Resize(30, 10)
	p.Tick()

	img := p.Surface().Image()
	drawn := false
	for y := 0; y < 10 && !drawn; y++ {
		for x := 0; x < 30; x++ {
			if img.RGBAAt(x, y) != spectral.Background {
				drawn = true
				break
			}
		}
	}
	if !drawn {
		t.Fatal("expected tick to draw onto the surface")
	}
}

func TestPipelinePausedTickIsFrozen(t *testing.T) {
	src := &stubSource{frames: [][]float64{{10, 20}, {200, 200}}}
	p := newTestPipeline(t, src)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	p.Resize(20, 10)
	p.Tick()
	before := append([]byte(nil), p.Surface().Image().Pix...)

	p.TogglePause()
	p.Tick() // must not consume or draw
	after := p.Surface().Image().Pix
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("paused tick modified the raster")
		}
	}
	if src.next != 1 {
		t.Fatalf("paused tick consumed a frame: next=%d", src.next)
	}
}

func TestPipelineTickAfterStopIsNoop(t *testing.T) {
	src := &stubSource{frames: [][]float64{{10, 20}, {30, 40}}}
	p := newTestPipeline(t, src)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	p.Resize(20, 10)
	p.Tick()
	if err := p.Stop(); err != nil {
		t.Fatal(err)
	}

	p.Tick() // a straggler after teardown must be harmless
	if src.next != 1 {
		t.Fatalf("tick after stop consumed a frame: next=%d", src.next)
	}
}

func TestPipelineBinCountChangeResetsHistory(t *testing.T) {
	src := &stubSource{frames: [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8}}}
	p := newTestPipeline(t, src)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	p.Resize(20, 10)
	p.Tick()
	p.Tick()
	p.Tick() // bin count drops from 3 to 2

	h := historyOf(p)
	if h.Len() != 1 {
		t.Fatalf("expected history reset to the new-width frame only, got %d", h.Len())
	}
	if len(h.Latest()) != 2 {
		t.Fatalf("expected 2-bin frame after reset, got %d bins", len(h.Latest()))
	}
}

func historyOf(p *Pipeline) *spectral.HistoryBuffer { return p.history }

func TestPipelineModeAndOptionsApplyNextTick(t *testing.T) {
	src := &stubSource{frames: [][]float64{{1, 2}, {3, 4}}}
	p := newTestPipeline(t, src)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	p.Resize(20, 10)
	p.Tick()

	p.SetMode(spectral.ModeSpectrogram)
	p.SetOptions(spectral.Options{LogScale: true, ShowPeaks: true})
	p.Tick()

	if p.Mode() != spectral.ModeSpectrogram {
		t.Fatalf("expected spectrogram mode, got %v", p.Mode())
	}
	if !p.Options().LogScale || !p.Options().ShowPeaks {
		t.Fatalf("options not applied: %+v", p.Options())
	}
}

func TestPipelineSnapshotWritesPNG(t *testing.T) {
	src := &stubSource{frames: [][]float64{{5, 10, 20}}}
	p := newTestPipeline(t, src)
	if err := p.Start(); err != nil {
		t.Fatal(err)
	}
	p.Resize(16, 8)
	p.Tick()

	path := filepath.Join(t.TempDir(), "snap.png")
	if err := p.Snapshot(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("expected 16x8 snapshot, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestPipelineSnapshotWithoutSurfaceFails(t *testing.T) {
	p := newTestPipeline(t, &stubSource{})
	if err := p.Snapshot(filepath.Join(t.TempDir(), "snap.png")); err == nil {
		t.Fatal("expected error for empty surface")
	}
}

func TestPipelineCycleMode(t *testing.T) {
	p := newTestPipeline(t, &stubSource{})
	start := p.Mode()
	p.CycleMode()
	p.CycleMode()
	p.CycleMode()
	if p.Mode() != start {
		t.Fatalf("expected three cycles to return to %v, got %v", start, p.Mode())
	}
}
