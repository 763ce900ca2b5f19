// Package cmd implements the command-line interface for cinedual.
package cmd

import (
	"errors"
	"fmt"

	"github.com/simgunz/cinedual/control"
	"github.com/simgunz/cinedual/delay"
	"github.com/simgunz/cinedual/icon"
	"github.com/simgunz/cinedual/key"
	"github.com/simgunz/cinedual/mpv"
	"github.com/simgunz/cinedual/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(controlCmd)
}

// controlCmd drives a running session, either with a single action or through
// the interactive loop.
var controlCmd = &cobra.Command{
	Use:   "control [<action> [<value>]]",
	Short: "Send a command to the running playback session",
	Long: `Dispatch a control command against the running session's player pair.
Without an action, an interactive loop prompts for commands until quit.
Timing-affecting commands (seek, delay changes) re-run the timed resume
sequence so both streams stay synchronized.

Actions: play, pause, seek <seconds>, set_delay [<seconds>],
increase_delay, decrease_delay, quit`,
	Example: "  cinedual control\n  cinedual control seek 120\n  cinedual control increase_delay",
	Args:    cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		video := mpv.NewChannel(where.VideoSocket())
		audio := mpv.NewChannel(where.AudioSocket())
		if !video.Exists() || !audio.Exists() {
			handleErr(errors.New("no active session found; start one with `cinedual play <movie>`"))
		}

		engine := delay.New(where.Delay(), viper.GetFloat64(key.DelayStep))
		handleErr(engine.Load())

		dispatcher := control.NewDispatcher(engine, video, audio)

		if len(args) == 0 {
			handleErr(control.Run(dispatcher))
			return
		}

		rawValue := ""
		if len(args) == 2 {
			rawValue = args[1]
		}

		command, err := control.Parse(args[0], rawValue)
		handleErr(err)

		result, err := dispatcher.Dispatch(command)
		handleErr(err)

		fmt.Printf("%s %s\n", icon.Get(icon.Success), result.Message)
	},
}
