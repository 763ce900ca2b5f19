// Package delay implements the timing offset applied between the video and
// audio-only player processes, its persistence, and the ordered resume
// sequence that realizes it.
package delay

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/simgunz/cinedual/filesystem"
	"github.com/simgunz/cinedual/log"
)

const (
	// DefaultCompensation is the offset, in seconds, used when no value has
	// been persisted yet.
	DefaultCompensation = 0.2

	// Epsilon bounds the band of delay values treated as zero.
	Epsilon = 0.001

	// precision is the number of fractional digits the persisted value carries.
	precision = 3
)

// Class partitions delay values by the resume order they imply.
type Class int

const (
	// Zero: both resumes are issued back to back.
	Zero Class = iota
	// Positive: the audio-only process starts later than the video process.
	Positive
	// Negative: the audio-only process starts earlier than the video process.
	Negative
)

// Classify maps a delay value onto its resume-order class using the Epsilon band.
func Classify(seconds float64) Class {
	switch {
	case seconds > Epsilon:
		return Positive
	case seconds < -Epsilon:
		return Negative
	default:
		return Zero
	}
}

// Format renders a delay value the way it is persisted, with fixed 3-decimal precision.
func Format(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', precision, 64)
}

// Transport is the subset of player control the engine needs to apply timing.
// Both channels of a session satisfy it.
type Transport interface {
	Pause() error
	Resume() error
}

// Engine holds the current delay compensation, persists it across sessions,
// and orders the resume commands of the two player processes accordingly.
// It assumes a single live session per host; the only write discipline is the
// atomic replace of the persisted file.
type Engine struct {
	path  string
	step  float64
	value float64

	video Transport
	audio Transport

	// sleep realizes the wall-clock gap between the two resume sends.
	// Replaced in tests.
	sleep func(time.Duration)
}

// New returns an Engine persisting to path, with the given adjustment step.
func New(path string, step float64) *Engine {
	return &Engine{
		path:  path,
		step:  step,
		sleep: time.Sleep,
	}
}

// Bind attaches the two player transports the engine commands. Must be called
// before TimedStart, Resync, or any adjustment.
func (e *Engine) Bind(video, audio Transport) {
	e.video = video
	e.audio = audio
}

// Current returns the in-memory delay compensation in seconds.
func (e *Engine) Current() float64 {
	return e.value
}

// Step returns the fixed increment applied by Increase and Decrease.
func (e *Engine) Step() float64 {
	return e.step
}

// Load reads the persisted delay compensation. When no file exists yet the
// compile-time default is adopted and persisted immediately.
func (e *Engine) Load() error {
	fs := filesystem.API()

	exists, err := fs.Exists(e.path)
	if err != nil {
		return fmt.Errorf("check delay file: %w", err)
	}
	if !exists {
		e.value = DefaultCompensation
		return e.Persist()
	}

	data, err := fs.ReadFile(e.path)
	if err != nil {
		return fmt.Errorf("read delay file: %w", err)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return fmt.Errorf("delay file %s is corrupt, delete it to reset: %w", e.path, err)
	}

	e.value = value
	return nil
}

// Persist atomically overwrites the persisted value with fixed precision.
func (e *Engine) Persist() error {
	fs := filesystem.API()
	tmp := e.path + ".tmp"

	if err := fs.WriteFile(tmp, []byte(Format(e.value)+"\n"), 0o644); err != nil {
		return fmt.Errorf("write delay file: %w", err)
	}
	if err := fs.Rename(tmp, e.path); err != nil {
		return fmt.Errorf("replace delay file: %w", err)
	}
	return nil
}

// TimedStart issues the two resume commands in the order and with the
// wall-clock gap the current delay dictates. Both players are expected to be
// paused already. The strict order and the single real sleep between the two
// sends are the whole synchronization contract and must not be reordered.
func (e *Engine) TimedStart() {
	gap := time.Duration(math.Abs(e.value) * float64(time.Second))

	switch Classify(e.value) {
	case Zero:
		e.send("resume video", e.video.Resume)
		e.send("resume audio-only", e.audio.Resume)
	case Positive:
		log.Infof("resuming video, audio-only follows in %ss", Format(e.value))
		e.send("resume video", e.video.Resume)
		e.sleep(gap)
		e.send("resume audio-only", e.audio.Resume)
	case Negative:
		log.Infof("resuming audio-only, video follows in %ss", Format(-e.value))
		e.send("resume audio-only", e.audio.Resume)
		e.sleep(gap)
		e.send("resume video", e.video.Resume)
	}
}

// Resync re-applies the timed start after an operation that can desynchronize
// the two streams: both players are paused first (order between the two pause
// sends is irrelevant), then resumed through TimedStart.
func (e *Engine) Resync() {
	e.send("pause video", e.video.Pause)
	e.send("pause audio-only", e.audio.Pause)
	e.TimedStart()
}

// SetTo replaces the delay compensation, persists it, and resynchronizes.
// On persistence failure the previous value is kept.
func (e *Engine) SetTo(seconds float64) error {
	previous := e.value
	e.value = round(seconds)

	if err := e.Persist(); err != nil {
		e.value = previous
		return err
	}

	e.Resync()
	return nil
}

// Increase shifts the delay compensation up by one step and returns the resulting value.
func (e *Engine) Increase() (float64, error) {
	err := e.SetTo(e.value + e.step)
	return e.value, err
}

// Decrease shifts the delay compensation down by one step and returns the resulting value.
func (e *Engine) Decrease() (float64, error) {
	err := e.SetTo(e.value - e.step)
	return e.value, err
}

// round clamps a value to the persisted precision so that repeated step
// adjustments stay exact.
func round(seconds float64) float64 {
	shift := math.Pow10(precision)
	return math.Round(seconds*shift) / shift
}

// send issues one best-effort command. Transport failures are reported and
// swallowed: keeping the control loop available matters more than strict
// delivery.
func (e *Engine) send(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Warnf("delay: %s failed: %v", name, err)
	}
}
