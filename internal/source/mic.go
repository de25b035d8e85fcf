package source

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/stared/fourious/internal/dsp"
)

const (
	micSampleRate      = 44100
	micFramesPerBuffer = 512
	// DefaultDeviceID selects the system default input device.
	DefaultDeviceID = -1
)

// Mic captures live audio from an input device via PortAudio. The capture
// callback mirrors samples into the ring; analysis happens on the tick loop.
type Mic struct {
	deviceID int
	ring     *SampleRing
	analyzer *dsp.Analyzer
	stream   *portaudio.Stream
	device   *portaudio.DeviceInfo
	started  bool
}

// NewMic prepares a microphone source for the given device (DefaultDeviceID
// for the system default). Capture starts on Start.
func NewMic(deviceID, fftSize int) (*Mic, error) {
	analyzer, err := dsp.NewAnalyzer(fftSize)
	if err != nil {
		return nil, err
	}
	return &Mic{
		deviceID: deviceID,
		ring:     NewSampleRing(analyzer.WindowSamples() * 4),
		analyzer: analyzer,
	}, nil
}

// Start initializes PortAudio and opens the input stream.
func (s *Mic) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initializing PortAudio: %w", err)
	}

	device, err := inputDevice(s.deviceID)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	s.device = device

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		FramesPerBuffer: micFramesPerBuffer,
		SampleRate:      micSampleRate,
	}
	stream, err := portaudio.OpenStream(params, s.capture)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("opening input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("starting input stream: %w", err)
	}
	s.stream = stream
	s.started = true
	return nil
}

// capture runs on PortAudio's callback thread; it only touches the ring.
// Mono samples are written twice to keep the ring stereo-interleaved.
func (s *Mic) capture(in []int16) {
	samples := make([]int16, 0, len(in)*2)
	for _, v := range in {
		samples = append(samples, v, v)
	}
	s.ring.Write(samples)
}

// Stop closes the stream and shuts PortAudio down.
func (s *Mic) Stop() error {
	if !s.started {
		return nil
	}
	s.started = false
	if err := s.stream.Stop(); err != nil {
		s.stream.Close()
		portaudio.Terminate()
		return err
	}
	s.stream.Close()
	return portaudio.Terminate()
}

// Frame analyzes the most recent capture window. It returns nil until a
// full window has been captured.
func (s *Mic) Frame() []float64 {
	return s.analyzer.Amplitudes(s.ring.Latest(s.analyzer.WindowSamples()))
}

func (s *Mic) Range() Range { return RangeUnit }

func (s *Mic) Describe() string {
	if s.device != nil {
		return "microphone: " + s.device.Name
	}
	return "microphone"
}

func inputDevice(deviceID int) (*portaudio.DeviceInfo, error) {
	if deviceID == DefaultDeviceID {
		device, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("no default input device: %w", err)
		}
		return device, nil
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if deviceID < 0 || deviceID >= len(devices) {
		return nil, fmt.Errorf("invalid device ID %d", deviceID)
	}
	if devices[deviceID].MaxInputChannels < 1 {
		return nil, fmt.Errorf("device %d has no input channels", deviceID)
	}
	return devices[deviceID], nil
}

// ListDevices returns one description line per audio device, marking inputs.
func ListDevices() ([]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(devices))
	for i, d := range devices {
		kind := "output"
		if d.MaxInputChannels > 0 {
			kind = fmt.Sprintf("input, %d ch", d.MaxInputChannels)
		}
		lines = append(lines, fmt.Sprintf("%3d: %s (%s, %.0f Hz)", i, d.Name, kind, d.DefaultSampleRate))
	}
	return lines, nil
}
