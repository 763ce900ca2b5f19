// Package mpv spawns and commands mpv player processes over their JSON IPC sockets.
package mpv

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/simgunz/cinedual/filesystem"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command []interface{} `json:"command"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
type ipcResponse struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

const (
	readDeadline = 1 * time.Second
	readBufSize  = 4096
)

// Channel is a command endpoint of one running player process, addressed by a
// fixed unix socket path. It keeps no state besides the address; every Send is
// a single connect-write-read exchange, attempted exactly once. Delivery is
// best-effort: callers log failures and carry on.
type Channel struct {
	socketPath string
	mu         sync.Mutex // serializes socket exchanges
}

// NewChannel returns a Channel bound to the given socket address.
func NewChannel(socketPath string) *Channel {
	return &Channel{socketPath: socketPath}
}

// Address returns the socket path this channel is bound to.
func (c *Channel) Address() string {
	return c.socketPath
}

// Exists reports whether the socket artifact is present on disk.
// Presence of the path is the sole readiness signal for a spawned player.
func (c *Channel) Exists() bool {
	exists, err := filesystem.API().Exists(c.socketPath)
	return err == nil && exists
}

// Remove deletes the socket artifact. Missing files are not an error.
func (c *Channel) Remove() error {
	fs := filesystem.API()
	if exists, _ := fs.Exists(c.socketPath); !exists {
		return nil
	}
	return fs.Remove(c.socketPath)
}

// Responds reports whether a process is actually answering on the socket,
// distinguishing a live session from a stale socket file.
func (c *Channel) Responds() bool {
	_, err := c.Send("get_property", "pid")
	return err == nil
}

// Send transmits a single JSON-IPC command to the player via the unix socket
// and returns the response payload. No retry is performed; the caller decides
// whether a failed send matters.
func (c *Channel) Send(command ...interface{}) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(ipcCommand{Command: command})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	_, err = conn.Write(append(payload, '\n'))
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	buf := make([]byte, readBufSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var resp ipcResponse
	if err := json.Unmarshal(buf[:n], &resp); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if resp.Error != "" && resp.Error != "success" {
		return nil, fmt.Errorf("mpv error: %s", resp.Error)
	}

	return resp.Data, nil
}

// SetPause sets the player's "paused" property.
func (c *Channel) SetPause(paused bool) error {
	_, err := c.Send("set_property", "pause", paused)
	return err
}

// Pause suspends playback.
func (c *Channel) Pause() error {
	return c.SetPause(true)
}

// Resume unpauses playback.
func (c *Channel) Resume() error {
	return c.SetPause(false)
}

// Seek moves playback to the given absolute position in seconds.
func (c *Channel) Seek(seconds float64) error {
	_, err := c.Send("seek", seconds, "absolute")
	return err
}

// Quit asks the player process to terminate.
func (c *Channel) Quit() error {
	_, err := c.Send("quit")
	return err
}
