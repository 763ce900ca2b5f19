// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Delay Compensation - these keys govern the timing offset applied between the two player processes.
const (
	DelayStep = "delay.step"
)

// Media Playback - these keys configure the external player binary and its invocation.
const (
	PlayerBinary       = "player.binary"
	PlayerExtraFlags   = "player.extra_flags"
	PlayerReadyTimeout = "player.ready_timeout"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the terminal-facing application behavior.
const (
	CliColored = "cli.colored"
)
