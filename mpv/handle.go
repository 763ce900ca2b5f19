package mpv

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/simgunz/cinedual/key"
	"github.com/simgunz/cinedual/log"
	"github.com/simgunz/cinedual/util"
	"github.com/spf13/viper"
)

// Role identifies which of the two paired player processes a handle represents.
type Role int

const (
	RoleVideo Role = iota + 1
	RoleAudio
)

// String returns the human-readable role name used in messages and logs.
func (r Role) String() string {
	switch r {
	case RoleVideo:
		return "video"
	case RoleAudio:
		return "audio-only"
	default:
		return "unknown"
	}
}

// SpawnOptions describes one player process to start.
type SpawnOptions struct {
	MovieFile    string
	Role         Role
	AudioTrack   int
	OutputDevice string
	SocketPath   string
}

// Handle owns the lifecycle of one spawned player process bound to one IPC
// socket and one output device. The socket address is pre-assigned so the
// orchestrator can poll for it.
type Handle struct {
	role    Role
	channel *Channel
	cmd     *exec.Cmd
	exited  chan struct{} // closed when the player process exits
}

const terminateGrace = 3 * time.Second

// Spawn starts a player process in a paused state with the given socket
// pre-bound, the given audio track selected, video enabled only for the video
// role, and output routed to the given device. Spawn failure is fatal for the
// whole session; the caller must terminate the sibling handle.
func Spawn(opts SpawnOptions) (*Handle, error) {
	if strings.HasPrefix(opts.MovieFile, "-") {
		return nil, fmt.Errorf("movie file %q must not start with '-' (looks like a flag)", opts.MovieFile)
	}

	channel := NewChannel(opts.SocketPath)

	// A leftover socket from a dead session would make the readiness poll
	// succeed before the new process binds it.
	if err := channel.Remove(); err != nil {
		return nil, fmt.Errorf("remove stale socket %s: %w", opts.SocketPath, err)
	}

	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--pause",
		fmt.Sprintf("--input-ipc-server=%s", opts.SocketPath),
		fmt.Sprintf("--aid=%d", opts.AudioTrack),
		fmt.Sprintf("--audio-device=%s", opts.OutputDevice),
	}

	switch opts.Role {
	case RoleVideo:
		args = append(args, "--force-window=yes")
	case RoleAudio:
		args = append(args, "--no-video")
	}

	args = append(args, viper.GetStringSlice(key.PlayerExtraFlags)...)
	args = append(args, opts.MovieFile)

	cmd := exec.Command(viper.GetString(key.PlayerBinary), args...)

	// Detach from the parent process group so a terminal interrupt reaches
	// cinedual first and cleanup can run before the players die.
	cmd.SysProcAttr = sysProcAttr()
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s player: %w", opts.Role, err)
	}

	h := &Handle{
		role:    opts.Role,
		channel: channel,
		cmd:     cmd,
		exited:  make(chan struct{}),
	}

	// Reap the process to prevent zombies.
	go func() {
		_ = cmd.Wait()
		close(h.exited)
	}()

	log.Infof("spawned %s player (pid %d, socket %s)", opts.Role, cmd.Process.Pid, channel.Address())
	return h, nil
}

// Role returns the role tag this handle was spawned with.
func (h *Handle) Role() Role {
	return h.role
}

// Channel returns the command channel bound to this player's socket.
func (h *Handle) Channel() *Channel {
	return h.channel
}

// IsChannelReady reports whether the player has bound its control socket.
func (h *Handle) IsChannelReady() bool {
	return h.channel.Exists()
}

// IsAlive reports whether the player process is still running.
func (h *Handle) IsAlive() bool {
	select {
	case <-h.exited:
		return false
	default:
		return true
	}
}

// Wait returns a channel that is closed when the player process exits.
func (h *Handle) Wait() <-chan struct{} {
	return h.exited
}

// Terminate shuts the player down, first asking politely over IPC and then
// killing the process group if it does not exit within the grace period.
func (h *Handle) Terminate() {
	if !h.IsAlive() {
		return
	}

	util.Ignore(h.channel.Quit)

	select {
	case <-h.exited:
	case <-time.After(terminateGrace):
		log.Warnf("%s player ignored quit, killing process group", h.role)
		_ = killProcess(h.cmd)
	}
}

// Cleanup removes the socket artifact. It must run on every exit path.
func (h *Handle) Cleanup() {
	if err := h.channel.Remove(); err != nil {
		log.Warnf("remove %s socket: %v", h.role, err)
	}
}
