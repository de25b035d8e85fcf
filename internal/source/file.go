package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/ebitengine/oto/v3"

	"github.com/stared/fourious/internal/dsp"
)

// Metadata holds track information for the header line.
type Metadata struct {
	Title  string
	Artist string
}

// ReadMetadata reads ID3v2 tags, falling back to the filename.
func ReadMetadata(path string) Metadata {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err == nil {
		defer tag.Close()
		m := Metadata{
			Title:  strings.TrimSpace(tag.Title()),
			Artist: strings.TrimSpace(tag.Artist()),
		}
		if m.Title != "" {
			return m
		}
	}

	base := filepath.Base(path)
	return Metadata{Title: strings.TrimSuffix(base, filepath.Ext(base))}
}

var (
	otoCtx     *oto.Context
	otoOnce    sync.Once
	otoInitErr error
)

// initOto creates the process-wide playback context. Oto allows exactly one
// context, so the first file's sample rate and channel count win.
func initOto(sampleRate, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return otoCtx, otoInitErr
}

// File plays a local audio file through oto while mirroring the decoded PCM
// into a sample ring for spectral analysis.
type File struct {
	path     string
	file     *os.File
	dec      pcmDecoder
	meta     Metadata
	duration time.Duration

	ring     *SampleRing
	analyzer *dsp.Analyzer
	tap      *tapReader
	player   *oto.Player

	mu      sync.Mutex
	stopped bool
}

// NewFile opens path and prepares playback and analysis. The audio does not
// start until Start is called.
func NewFile(path string, fftSize int) (*File, error) {
	analyzer, err := dsp.NewAnalyzer(fftSize)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := openDecoder(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	bytesPerSec := int64(dec.SampleRate() * dec.Channels() * 2)
	var dur time.Duration
	if dec.Length() > 0 && bytesPerSec > 0 {
		dur = time.Duration(float64(dec.Length()) / float64(bytesPerSec) * float64(time.Second))
	}

	// Keep a few analysis windows of slack so the tick loop always finds a
	// full window regardless of oto's read sizes.
	ring := NewSampleRing(analyzer.WindowSamples() * 4)

	return &File{
		path:     path,
		file:     f,
		dec:      dec,
		meta:     ReadMetadata(path),
		duration: dur,
		ring:     ring,
		analyzer: analyzer,
	}, nil
}

// Start begins playback and PCM mirroring.
func (s *File) Start() error {
	ctx, err := initOto(s.dec.SampleRate(), s.dec.Channels())
	if err != nil {
		return fmt.Errorf("initializing audio output: %w", err)
	}
	s.tap = &tapReader{
		r:        s.dec,
		ring:     s.ring,
		channels: s.dec.Channels(),
		done:     make(chan struct{}),
	}
	s.player = ctx.NewPlayer(s.tap)
	s.player.Play()
	return nil
}

// Stop halts playback and releases the file.
func (s *File) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	if s.player != nil {
		s.player.Close()
	}
	return s.file.Close()
}

// Frame analyzes the most recent PCM window. It returns nil until a full
// window has played.
func (s *File) Frame() []float64 {
	return s.analyzer.Amplitudes(s.ring.Latest(s.analyzer.WindowSamples()))
}

func (s *File) Range() Range { return RangeUnit }

func (s *File) Describe() string {
	if s.meta.Artist != "" {
		return s.meta.Title + " — " + s.meta.Artist
	}
	return s.meta.Title
}

// Position returns how much audio has been decoded so far.
func (s *File) Position() time.Duration {
	if s.tap == nil {
		return 0
	}
	bytesPerSec := int64(s.dec.SampleRate() * s.dec.Channels() * 2)
	if bytesPerSec == 0 {
		return 0
	}
	return time.Duration(float64(s.tap.Bytes()) / float64(bytesPerSec) * float64(time.Second))
}

// Duration returns the track length, or 0 when unknown.
func (s *File) Duration() time.Duration { return s.duration }

// Done returns a channel closed when the decoder reaches end of stream.
// It returns nil before Start.
func (s *File) Done() <-chan struct{} {
	if s.tap == nil {
		return nil
	}
	return s.tap.done
}

// tapReader passes decoded PCM through to the playback engine while
// mirroring it into the sample ring. Mono input is written twice per sample
// so the ring is always stereo-interleaved for the analyzer.
type tapReader struct {
	r        io.Reader
	ring     *SampleRing
	channels int
	done     chan struct{}

	mu       sync.Mutex
	pos      int64
	doneOnce sync.Once
}

func (t *tapReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		samples := make([]int16, 0, n/2*2)
		for i := 0; i+1 < n; i += 2 {
			s := int16(uint16(p[i]) | uint16(p[i+1])<<8)
			if t.channels == 1 {
				samples = append(samples, s, s)
			} else {
				samples = append(samples, s)
			}
		}
		t.ring.Write(samples)
		t.mu.Lock()
		t.pos += int64(n)
		t.mu.Unlock()
	}
	if err == io.EOF {
		t.doneOnce.Do(func() { close(t.done) })
	}
	return n, err
}

// Bytes returns how many PCM bytes have passed through the tap.
func (t *tapReader) Bytes() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}
