// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/simgunz/cinedual/constant"
	"github.com/simgunz/cinedual/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "CINEDUAL_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths on Darwin and Windows.
// Direct override: The path resolution can be explicitly specified via the CINEDUAL_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Cinedual))
}

// Logs resolves the absolute path to the directory used for application diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Delay resolves the absolute path to the persisted delay-compensation file.
func Delay() string {
	return filepath.Join(Config(), "delay")
}

// Runtime resolves the volatile directory holding the per-session player control sockets.
// The addresses are fixed per role so a separate control invocation can find a running session.
func Runtime() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Cinedual))
}

// VideoSocket resolves the fixed control socket address of the video player process.
func VideoSocket() string {
	return filepath.Join(Runtime(), "video.sock")
}

// AudioSocket resolves the fixed control socket address of the audio-only player process.
func AudioSocket() string {
	return filepath.Join(Runtime(), "audio.sock")
}
