package dynamics

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-dynamics/dsp/buffer"
	"github.com/cwbudde/algo-dynamics/dsp/core"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/computer"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/sidechain"
	"github.com/cwbudde/algo-dynamics/dsp/dynamics/state"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// Parameter validation ranges
	minAttackMs    = 0.01
	maxAttackMs    = 1000.0
	minReleaseMs   = 1.0
	maxReleaseMs   = 10000.0
	minRatio       = 1.0
	maxRatio       = 100.0
	minThresholdDB = -96.0
	maxThresholdDB = 0.0
	minKneeDB      = 0.0
	maxKneeDB      = 24.0
	minMakeupDB    = -24.0
	maxMakeupDB    = 24.0
)

var (
	// ErrQueueFull is returned when a control change cannot be queued
	// because Process has not drained the previous ones yet.
	ErrQueueFull = errors.New("dynamics: control queue full")

	// ErrFixedByModel is returned for continuous controls on a hardware
	// model, which only exposes its quantized steps.
	ErrFixedByModel = errors.New("dynamics: parameter is fixed by the hardware model")

	// ErrGenericOnly is returned for topology and dynamics changes on a
	// hardware model.
	ErrGenericOnly = errors.New("dynamics: only the generic model can change topology")
)

// channel is the per-channel gain source: a Sidechain or a Hardware model.
type channel[F core.Float] interface {
	Process(x F) F
	CurrentGainReduction() F
	Reset()
	Detach()
}

// Meters is a snapshot of the processor's level meters.
type Meters struct {
	// GainReductionDB is the deepest channel reduction at the end of the
	// last block (<= 0).
	GainReductionDB float64
	// InputPeak and OutputPeak hold the largest absolute sample since the
	// last ResetMeters.
	InputPeak  float64
	OutputPeak float64
}

// Processor applies dynamics to multi-channel buffers. Process must be
// called from a single goroutine. Setters and meters may be used
// concurrently with it.
type Processor[F core.Float] struct {
	cfg     Config
	profile sidechain.Profile

	st       *state.State[F]
	queue    *state.Queue[F]
	channels []channel[F]
	generic  []*sidechain.Sidechain[F]

	gain [][]F

	// control side
	mu          sync.Mutex
	ctrl        state.Values[F]
	preset      int
	attackStep  int
	releaseStep int

	computerTopology atomic.Int32
	detectorTopology atomic.Int32
	dynamicsType     atomic.Int32
	pendingTopology  atomic.Bool
	resetPending     atomic.Bool

	stereoLink atomic.Bool
	makeupDB   atomic.Uint64

	grMeter    atomic.Uint64
	inputPeak  atomic.Uint64
	outputPeak atomic.Uint64
}

// New builds a processor. With a hardware model the state starts at the
// model's default steps; otherwise it starts at Config.Values.
func New[F core.Float](opts ...Option) (*Processor[F], error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	st := state.New(state.WithValues(convertValues[F](cfg.Values)), state.WithSampleRate(F(cfg.SampleRate)))

	p := &Processor[F]{
		cfg:         cfg,
		st:          st,
		queue:       state.NewQueue[F](cfg.QueueCapacity),
		channels:    make([]channel[F], cfg.Channels),
		gain:        make([][]F, cfg.Channels),
		preset:      -1,
		attackStep:  -1,
		releaseStep: -1,
	}

	if cfg.Model == sidechain.Generic {
		p.generic = make([]*sidechain.Sidechain[F], cfg.Channels)
	} else {
		profile, err := sidechain.ProfileOf(cfg.Model)
		if err != nil {
			return nil, err
		}

		p.profile = profile
	}

	for ch := range cfg.Channels {
		c, err := p.newChannel(ch)
		if err != nil {
			p.Close()
			return nil, err
		}

		p.channels[ch] = c
		p.gain[ch] = make([]F, cfg.BlockSize)
	}

	if cfg.Model == sidechain.Generic {
		p.computerTopology.Store(int32(cfg.Sidechain.ComputerTopology))
		p.detectorTopology.Store(int32(cfg.Sidechain.DetectorTopology))
		p.dynamicsType.Store(int32(cfg.Sidechain.Dynamics))
	} else {
		p.computerTopology.Store(int32(p.profile.ComputerTopology))
		p.detectorTopology.Store(int32(p.profile.DetectorTopology))
		p.dynamicsType.Store(int32(computer.Compress))
		p.preset = p.profile.DefaultPreset
		p.attackStep = p.profile.DefaultAttack
		p.releaseStep = p.profile.DefaultRelease
	}

	p.ctrl = st.Snapshot()
	p.stereoLink.Store(cfg.StereoLink)
	p.makeupDB.Store(math.Float64bits(cfg.MakeupDB))

	return p, nil
}

func (p *Processor[F]) newChannel(ch int) (channel[F], error) {
	if p.generic == nil {
		return sidechain.NewHardware(p.cfg.Model, p.st)
	}

	sc, err := sidechain.New(p.st, sidechain.WithConfig(p.cfg.Sidechain))
	if err != nil {
		return nil, err
	}

	p.generic[ch] = sc

	return sc, nil
}

func validateConfig(cfg Config) error {
	if err := checkRange("makeup", cfg.MakeupDB, minMakeupDB, maxMakeupDB); err != nil {
		return err
	}

	if cfg.Model != sidechain.Generic {
		_, err := sidechain.ProfileOf(cfg.Model)
		return err
	}

	v := cfg.Values

	if err := checkRange("attack", v.Attack.Seconds*1000, minAttackMs, maxAttackMs); err != nil {
		return err
	}

	if err := checkRange("release", v.Release.Seconds*1000, minReleaseMs, maxReleaseMs); err != nil {
		return err
	}

	if err := checkRange("ratio", v.Ratio, minRatio, maxRatio); err != nil {
		return err
	}

	if err := checkRange("threshold", v.Threshold, minThresholdDB, maxThresholdDB); err != nil {
		return err
	}

	return checkRange("knee", v.KneeWidth, minKneeDB, maxKneeDB)
}

func checkRange(name string, v, lo, hi float64) error {
	if v < lo || v > hi || math.IsNaN(v) {
		return fmt.Errorf("dynamics: %s must be in [%f, %f]: %f", name, lo, hi, v)
	}

	return nil
}

func convertValues[F core.Float](v state.Values[float64]) state.Values[F] {
	return state.Values[F]{
		Attack:             v.Attack,
		Release:            v.Release,
		Ratio:              F(v.Ratio),
		Threshold:          F(v.Threshold),
		KneeWidth:          F(v.KneeWidth),
		SampleRate:         F(v.SampleRate),
		HasAutoRelease:     v.HasAutoRelease,
		AutoReleaseEnabled: v.AutoReleaseEnabled,
	}
}

// Channels returns the number of channels the processor was built for.
func (p *Processor[F]) Channels() int { return len(p.channels) }

// BlockSize returns the scratch block length.
func (p *Processor[F]) BlockSize() int { return p.cfg.BlockSize }

// Model returns the hardware model, Generic for the continuous sidechain.
func (p *Processor[F]) Model() sidechain.Model { return p.cfg.Model }

// Values returns the control-side view of the parameters, including
// changes still waiting in the queue.
func (p *Processor[F]) Values() state.Values[F] {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ctrl
}

// SetAttack sets the attack time in milliseconds.
func (p *Processor[F]) SetAttack(ms float64) error {
	if err := p.continuous("attack", ms, minAttackMs, maxAttackMs); err != nil {
		return err
	}

	t := state.Milliseconds(ms)

	return p.push(func(v *state.Values[F]) { v.Attack = t }, state.AttackEvent[F](t))
}

// SetRelease sets the release time in milliseconds.
func (p *Processor[F]) SetRelease(ms float64) error {
	if err := p.continuous("release", ms, minReleaseMs, maxReleaseMs); err != nil {
		return err
	}

	t := state.Milliseconds(ms)

	return p.push(func(v *state.Values[F]) { v.Release = t }, state.ReleaseEvent[F](t))
}

// SetRatio sets the compression or expansion ratio.
func (p *Processor[F]) SetRatio(ratio float64) error {
	if err := p.continuous("ratio", ratio, minRatio, maxRatio); err != nil {
		return err
	}

	return p.push(func(v *state.Values[F]) { v.Ratio = F(ratio) },
		state.ValueEvent(state.FieldRatio, F(ratio)))
}

// SetThreshold sets the threshold in dB.
func (p *Processor[F]) SetThreshold(dB float64) error {
	if err := p.continuous("threshold", dB, minThresholdDB, maxThresholdDB); err != nil {
		return err
	}

	return p.push(func(v *state.Values[F]) { v.Threshold = F(dB) },
		state.ValueEvent(state.FieldThreshold, F(dB)))
}

// SetKnee sets the soft knee width in dB. Zero is a hard knee.
func (p *Processor[F]) SetKnee(dB float64) error {
	if err := p.continuous("knee", dB, minKneeDB, maxKneeDB); err != nil {
		return err
	}

	return p.push(func(v *state.Values[F]) { v.KneeWidth = F(dB) },
		state.ValueEvent(state.FieldKneeWidth, F(dB)))
}

// SetSampleRate changes the processing sample rate. Every derived
// coefficient follows on the next block.
func (p *Processor[F]) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("dynamics: sample rate must be positive and finite: %f", sampleRate)
	}

	return p.push(func(v *state.Values[F]) { v.SampleRate = F(sampleRate) },
		state.ValueEvent(state.FieldSampleRate, F(sampleRate)))
}

// SetPreset selects a ratio/threshold/knee preset of the hardware model.
func (p *Processor[F]) SetPreset(i int) error {
	events, err := sidechain.PresetEvents[F](p.cfg.Model, i)
	if err != nil {
		return err
	}

	return p.pushSteps(events, &p.preset, i)
}

// SetAttackStep selects an attack step of the hardware model.
func (p *Processor[F]) SetAttackStep(i int) error {
	events, err := sidechain.AttackStepEvents[F](p.cfg.Model, i)
	if err != nil {
		return err
	}

	return p.pushSteps(events, &p.attackStep, i)
}

// SetReleaseStep selects a release step of the hardware model. The last
// step is the auto release.
func (p *Processor[F]) SetReleaseStep(i int) error {
	events, err := sidechain.ReleaseStepEvents[F](p.cfg.Model, i)
	if err != nil {
		return err
	}

	return p.pushSteps(events, &p.releaseStep, i)
}

// Steps returns the selected preset, attack and release steps, or -1 each
// for the generic model.
func (p *Processor[F]) Steps() (preset, attack, release int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.preset, p.attackStep, p.releaseStep
}

// ComputerTopology returns the requested computer topology.
func (p *Processor[F]) ComputerTopology() sidechain.ComputerTopology {
	return sidechain.ComputerTopology(p.computerTopology.Load())
}

// SetComputerTopology switches between feedforward and feedback detection.
func (p *Processor[F]) SetComputerTopology(t sidechain.ComputerTopology) error {
	if p.generic == nil {
		return ErrGenericOnly
	}

	if t != sidechain.FeedForward && t != sidechain.FeedBack {
		return fmt.Errorf("dynamics: invalid computer topology: %d", int(t))
	}

	p.computerTopology.Store(int32(t))
	p.pendingTopology.Store(true)

	return nil
}

// DetectorTopology returns the requested detector topology.
func (p *Processor[F]) DetectorTopology() sidechain.DetectorTopology {
	return sidechain.DetectorTopology(p.detectorTopology.Load())
}

// SetDetectorTopology selects the detector operating point.
func (p *Processor[F]) SetDetectorTopology(t sidechain.DetectorTopology) error {
	if p.generic == nil {
		return ErrGenericOnly
	}

	if t < sidechain.ReturnToZero || t > sidechain.AlternateReturnToThreshold {
		return fmt.Errorf("dynamics: invalid detector topology: %d", int(t))
	}

	p.detectorTopology.Store(int32(t))
	p.pendingTopology.Store(true)

	return nil
}

// DynamicsType returns the requested curve kind.
func (p *Processor[F]) DynamicsType() computer.Kind {
	return computer.Kind(p.dynamicsType.Load())
}

// SetDynamicsType switches between compression and expansion.
func (p *Processor[F]) SetDynamicsType(kind computer.Kind) error {
	if p.generic == nil {
		return ErrGenericOnly
	}

	if kind != computer.Compress && kind != computer.Expand {
		return fmt.Errorf("dynamics: invalid dynamics type: %d", int(kind))
	}

	p.dynamicsType.Store(int32(kind))
	p.pendingTopology.Store(true)

	return nil
}

// StereoLink reports whether channels share the deepest gain.
func (p *Processor[F]) StereoLink() bool { return p.stereoLink.Load() }

// SetStereoLink enables or disables stereo linking.
func (p *Processor[F]) SetStereoLink(enabled bool) { p.stereoLink.Store(enabled) }

// Makeup returns the makeup gain in dB.
func (p *Processor[F]) Makeup() float64 { return math.Float64frombits(p.makeupDB.Load()) }

// SetMakeup sets the makeup gain in dB.
func (p *Processor[F]) SetMakeup(dB float64) error {
	if err := checkRange("makeup", dB, minMakeupDB, maxMakeupDB); err != nil {
		return err
	}

	p.makeupDB.Store(math.Float64bits(dB))

	return nil
}

func (p *Processor[F]) continuous(name string, v, lo, hi float64) error {
	if p.generic == nil {
		return fmt.Errorf("%w: %s", ErrFixedByModel, name)
	}

	return checkRange(name, v, lo, hi)
}

func (p *Processor[F]) push(mirror func(*state.Values[F]), events ...state.Event[F]) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enqueue(events) {
		return ErrQueueFull
	}

	mirror(&p.ctrl)

	return nil
}

func (p *Processor[F]) pushSteps(events []state.Event[F], step *int, i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enqueue(events) {
		return ErrQueueFull
	}

	for _, e := range events {
		applyMirror(&p.ctrl, e)
	}

	*step = i

	return nil
}

// enqueue pushes all events or none. Callers hold mu, so this is the only
// producer.
func (p *Processor[F]) enqueue(events []state.Event[F]) bool {
	if p.queue.Cap()-p.queue.Len() < len(events) {
		return false
	}

	for _, e := range events {
		p.queue.Push(e)
	}

	return true
}

func applyMirror[F core.Float](v *state.Values[F], e state.Event[F]) {
	switch e.Field {
	case state.FieldAttack:
		v.Attack = e.Timing
	case state.FieldRelease:
		v.Release = e.Timing
	case state.FieldRatio:
		v.Ratio = e.Value
	case state.FieldThreshold:
		v.Threshold = e.Value
	case state.FieldKneeWidth:
		v.KneeWidth = e.Value
	case state.FieldSampleRate:
		v.SampleRate = e.Value
	case state.FieldHasAutoRelease:
		v.HasAutoRelease = e.Flag
	case state.FieldAutoReleaseEnabled:
		v.AutoReleaseEnabled = e.Flag
	}
}

// Process applies the dynamics to buf in place. Queued control changes take
// effect first. Channels beyond Channels() are left untouched; blocks longer
// than BlockSize() are processed in BlockSize() chunks.
func (p *Processor[F]) Process(buf *buffer.Buffer[F]) {
	p.beginBlock()

	channels := min(buf.Channels(), len(p.channels))
	frames := buf.Frames()
	link := p.stereoLink.Load() && channels > 1
	makeup := core.DBToLinear(F(p.Makeup()))

	var inPeak, outPeak F

	for off := 0; off < frames; off += p.cfg.BlockSize {
		n := min(p.cfg.BlockSize, frames-off)

		for ch := range channels {
			x := buf.Channel(ch)[off : off+n]
			g := p.gain[ch][:n]
			c := p.channels[ch]

			for i, v := range x {
				inPeak = max(inPeak, abs(v))
				g[i] = c.Process(v)
			}
		}

		if link {
			for ch := 1; ch < channels; ch++ {
				core.MinInto(p.gain[0][:n], p.gain[ch][:n])
			}

			scaleInPlace(p.gain[0][:n], makeup)
		}

		for ch := range channels {
			x := buf.Channel(ch)[off : off+n]

			g := p.gain[0][:n]
			if !link {
				g = p.gain[ch][:n]
				scaleInPlace(g, makeup)
			}

			mulInPlace(x, g)

			for _, v := range x {
				outPeak = max(outPeak, abs(v))
			}
		}
	}

	p.publish(channels, inPeak, outPeak)
}

// Reset clears every channel's history on the next Process call.
func (p *Processor[F]) Reset() { p.resetPending.Store(true) }

// Meters returns the current meter readings.
func (p *Processor[F]) Meters() Meters {
	return Meters{
		GainReductionDB: math.Float64frombits(p.grMeter.Load()),
		InputPeak:       math.Float64frombits(p.inputPeak.Load()),
		OutputPeak:      math.Float64frombits(p.outputPeak.Load()),
	}
}

// CurrentGainReduction returns the deepest channel gain reduction in dB at
// the end of the last block.
func (p *Processor[F]) CurrentGainReduction() float64 {
	return math.Float64frombits(p.grMeter.Load())
}

// ResetMeters clears the peak holds.
func (p *Processor[F]) ResetMeters() {
	p.inputPeak.Store(0)
	p.outputPeak.Store(0)
}

// Close detaches every channel from the shared state.
func (p *Processor[F]) Close() {
	for _, c := range p.channels {
		if c != nil {
			c.Detach()
		}
	}
}

func (p *Processor[F]) beginBlock() {
	p.queue.Drain(p.st)

	if p.resetPending.Swap(false) {
		for _, c := range p.channels {
			c.Reset()
		}
	}

	if !p.pendingTopology.Swap(false) {
		return
	}

	ct := sidechain.ComputerTopology(p.computerTopology.Load())
	dt := sidechain.DetectorTopology(p.detectorTopology.Load())
	kind := computer.Kind(p.dynamicsType.Load())

	for _, sc := range p.generic {
		sc.SetComputerTopology(ct)
		sc.SetDetectorTopology(dt)
		sc.SetDynamicsType(kind)
	}
}

func (p *Processor[F]) publish(channels int, inPeak, outPeak F) {
	var gr F
	for ch := range channels {
		gr = min(gr, p.channels[ch].CurrentGainReduction())
	}

	p.grMeter.Store(math.Float64bits(float64(gr)))
	storeMax(&p.inputPeak, float64(inPeak))
	storeMax(&p.outputPeak, float64(outPeak))
}

func storeMax(a *atomic.Uint64, v float64) {
	for {
		old := a.Load()
		if math.Float64frombits(old) >= v || a.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

func abs[F core.Float](x F) F {
	if x < 0 {
		return -x
	}

	return x
}

func scaleInPlace[F core.Float](g []F, s F) {
	if s == 1 {
		return
	}

	if gd, ok := any(g).([]float64); ok {
		vecmath.ScaleBlock(gd, gd, float64(s))
		return
	}

	for i := range g {
		g[i] *= s
	}
}

func mulInPlace[F core.Float](x, g []F) {
	if xd, ok := any(x).([]float64); ok {
		vecmath.MulBlockInPlace(xd, any(g).([]float64))
		return
	}

	for i := range x {
		x[i] *= g[i]
	}
}
