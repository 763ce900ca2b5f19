package control

import (
	"fmt"

	"github.com/simgunz/cinedual/delay"
	"github.com/simgunz/cinedual/log"
)

// Transport is the per-player command surface the dispatcher drives. The two
// session channels satisfy it.
type Transport interface {
	Pause() error
	Resume() error
	Seek(seconds float64) error
	Quit() error
}

// Result is the operator-facing outcome of one dispatched command.
type Result struct {
	Message string
	Quit    bool
}

// Dispatcher is a stateless mapping from commands to channel sends. Timing
// adjustments are delegated to the delay engine, which re-runs the timed
// resume sequence whenever the two streams may have drifted apart.
type Dispatcher struct {
	engine *delay.Engine
	video  Transport
	audio  Transport
}

// NewDispatcher binds a dispatcher (and its delay engine) to the session's
// two player transports.
func NewDispatcher(engine *delay.Engine, video, audio Transport) *Dispatcher {
	engine.Bind(video, audio)
	return &Dispatcher{engine: engine, video: video, audio: audio}
}

// Dispatch executes one command against the player pair. Commands are
// independent and idempotent; transport failures are reported as warnings
// while validation and persistence failures surface as errors.
func (d *Dispatcher) Dispatch(cmd Command) (Result, error) {
	switch cmd.Action {
	case ActionPlay:
		d.send("resume video", d.video.Resume)
		d.send("resume audio-only", d.audio.Resume)
		return Result{Message: "playback resumed"}, nil

	case ActionPause:
		d.send("pause video", d.video.Pause)
		d.send("pause audio-only", d.audio.Pause)
		return Result{Message: "playback paused"}, nil

	case ActionSeek:
		position := cmd.Value.MustGet()
		d.send("pause video", d.video.Pause)
		d.send("pause audio-only", d.audio.Pause)
		d.send("seek video", func() error { return d.video.Seek(position) })
		d.send("seek audio-only", func() error { return d.audio.Seek(position) })
		d.engine.Resync()
		return Result{Message: fmt.Sprintf("seeked to %.0fs, resynchronized (delay %ss)", position, delay.Format(d.engine.Current()))}, nil

	case ActionSetDelay:
		value, ok := cmd.Value.Get()
		if !ok {
			return Result{Message: fmt.Sprintf("current delay compensation: %ss (usage: set_delay <seconds>)", delay.Format(d.engine.Current()))}, nil
		}
		if err := d.engine.SetTo(value); err != nil {
			return Result{}, fmt.Errorf("set delay compensation: %w", err)
		}
		return Result{Message: fmt.Sprintf("delay compensation set to %ss", delay.Format(d.engine.Current()))}, nil

	case ActionIncreaseDelay:
		value, err := d.engine.Increase()
		if err != nil {
			return Result{}, fmt.Errorf("increase delay compensation: %w", err)
		}
		return Result{Message: fmt.Sprintf("delay compensation: %ss", delay.Format(value))}, nil

	case ActionDecreaseDelay:
		value, err := d.engine.Decrease()
		if err != nil {
			return Result{}, fmt.Errorf("decrease delay compensation: %w", err)
		}
		return Result{Message: fmt.Sprintf("delay compensation: %ss", delay.Format(value))}, nil

	case ActionQuit:
		d.send("quit video", d.video.Quit)
		d.send("quit audio-only", d.audio.Quit)
		return Result{Message: "session terminated", Quit: true}, nil

	default:
		return Result{}, errUnknownAction(string(cmd.Action))
	}
}

// send issues one best-effort IPC command. A failed send is logged and
// swallowed so a flaky player never takes the control loop down with it.
func (d *Dispatcher) send(name string, fn func() error) {
	if err := fn(); err != nil {
		log.Warnf("control: %s failed: %v", name, err)
	}
}
