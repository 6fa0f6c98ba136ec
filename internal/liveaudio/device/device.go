// Package device runs a liveaudio.Duplex on the default portaudio devices.
package device

import (
	"errors"
	"fmt"
	"strings"

	pa "github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-dynamics/internal/liveaudio"
)

// ErrRunning is returned when Start is called on a running stream.
var ErrRunning = errors.New("device: stream already running")

// Config selects the stream format.
type Config struct {
	SampleRate      float64
	Channels        int
	FramesPerBuffer int
}

// Info describes the opened devices.
type Info struct {
	Version    string
	HostAPI    string
	Input      string
	Output     string
	SampleRate float64
	Latency    float64 // output latency in seconds
}

// Stream is a running full-duplex stream.
type Stream struct {
	stream  *pa.Stream
	duplex  *liveaudio.Duplex
	info    Info
	running bool
}

// Open initializes portaudio and opens the default input and output devices.
// Close must be called to release portaudio.
func Open(cfg Config, duplex *liveaudio.Duplex) (*Stream, error) {
	if err := pa.Initialize(); err != nil {
		return nil, fmt.Errorf("device: initialize portaudio: %w", err)
	}

	in, err := pa.DefaultInputDevice()
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("device: default input: %w", err)
	}

	out, err := pa.DefaultOutputDevice()
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("device: default output: %w", err)
	}

	stream, err := pa.OpenDefaultStream(cfg.Channels, cfg.Channels, cfg.SampleRate, cfg.FramesPerBuffer, duplex.Callback)
	if err != nil {
		_ = pa.Terminate()
		return nil, fmt.Errorf("device: open stream: %w", err)
	}

	info := Info{
		Version:    strings.Split(pa.VersionText(), ",")[0],
		Input:      in.Name,
		Output:     out.Name,
		SampleRate: stream.Info().SampleRate,
		Latency:    stream.Info().OutputLatency.Seconds(),
	}

	if api, err := pa.DefaultHostApi(); err == nil {
		info.HostAPI = api.Name
	}

	return &Stream{stream: stream, duplex: duplex, info: info}, nil
}

// Info returns the device description.
func (s *Stream) Info() Info { return s.info }

// Start begins audio processing.
func (s *Stream) Start() error {
	if s.running {
		return ErrRunning
	}

	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("device: start: %w", err)
	}

	s.running = true

	return nil
}

// Stop halts audio processing.
func (s *Stream) Stop() error {
	if !s.running {
		return nil
	}

	s.running = false

	return s.stream.Stop()
}

// Close stops the stream and terminates portaudio.
func (s *Stream) Close() error {
	stopErr := s.Stop()
	closeErr := s.stream.Close()
	termErr := pa.Terminate()

	return errors.Join(stopErr, closeErr, termErr)
}
