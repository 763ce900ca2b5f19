// Package session orchestrates one synchronized dual-player playback session:
// it spawns the two player processes paused, waits for their control sockets,
// applies the timed start, and supervises them until both exit.
package session

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simgunz/cinedual/delay"
	"github.com/simgunz/cinedual/filesystem"
	"github.com/simgunz/cinedual/key"
	"github.com/simgunz/cinedual/log"
	"github.com/simgunz/cinedual/mpv"
	"github.com/simgunz/cinedual/util"
	"github.com/simgunz/cinedual/where"
	"github.com/spf13/viper"
)

const readyPollInterval = 100 * time.Millisecond

// Options describes one playback session.
type Options struct {
	MovieFile   string
	VideoTrack  int
	AudioTrack  int
	VideoDevice string
	AudioDevice string
}

// process is the slice of a player handle the readiness poll needs.
type process interface {
	Role() mpv.Role
	IsChannelReady() bool
	IsAlive() bool
}

// Start runs a session to completion. It returns once both player processes
// have exited, whether naturally, via a propagated quit command, or after an
// interrupt signal. The socket artifacts are removed on every exit path.
func Start(opts Options) error {
	fs := filesystem.API()
	if exists, _ := fs.Exists(opts.MovieFile); !exists {
		return fmt.Errorf("movie file %q not found", opts.MovieFile)
	}

	// Channel addresses are fixed per host: a session whose sockets still
	// answer means another instance is live, and two coupled pairs on the
	// same addresses cannot coexist.
	if probe := mpv.NewChannel(where.VideoSocket()); probe.Exists() && probe.Responds() {
		return errors.New("another session is already running; quit it first with `cinedual control quit`")
	}

	engine := delay.New(where.Delay(), viper.GetFloat64(key.DelayStep))
	if err := engine.Load(); err != nil {
		return fmt.Errorf("load delay compensation: %w", err)
	}

	video, err := mpv.Spawn(mpv.SpawnOptions{
		MovieFile:    opts.MovieFile,
		Role:         mpv.RoleVideo,
		AudioTrack:   opts.VideoTrack,
		OutputDevice: opts.VideoDevice,
		SocketPath:   where.VideoSocket(),
	})
	if err != nil {
		return err
	}

	audio, err := mpv.Spawn(mpv.SpawnOptions{
		MovieFile:    opts.MovieFile,
		Role:         mpv.RoleAudio,
		AudioTrack:   opts.AudioTrack,
		OutputDevice: opts.AudioDevice,
		SocketPath:   where.AudioSocket(),
	})
	if err != nil {
		video.Terminate()
		video.Cleanup()
		return err
	}

	defer video.Cleanup()
	defer audio.Cleanup()

	// An interrupt must still reach the cleanup deferred above, so the
	// handler only terminates the players and lets the final waits return.
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-interrupted:
			log.Info("interrupted, terminating both players")
			video.Terminate()
			audio.Terminate()
		case <-done:
		}
	}()

	timeout := time.Duration(viper.GetInt(key.PlayerReadyTimeout)) * time.Second
	if err := waitReady(timeout, video, audio); err != nil {
		video.Terminate()
		audio.Terminate()
		return err
	}

	engine.Bind(video.Channel(), audio.Channel())
	engine.TimedStart()

	<-video.Wait()
	<-audio.Wait()
	return nil
}

// waitReady polls until every process has bound its control socket. A process
// dying before its socket appears is a hard failure with no retry.
func waitReady(timeout time.Duration, procs ...process) error {
	log.Debugf("waiting up to %s for %s to become ready", timeout, util.Quantify(len(procs), "player", "players"))
	deadline := time.Now().Add(timeout)

	for {
		ready := true
		for _, p := range procs {
			if p.IsChannelReady() {
				continue
			}
			if !p.IsAlive() {
				return fmt.Errorf("%s player exited before its control socket appeared", p.Role())
			}
			ready = false
		}

		if ready {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("players not ready after %s", timeout)
		}

		time.Sleep(readyPollInterval)
	}
}
