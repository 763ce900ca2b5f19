// Package cmd implements the command-line interface for cinedual.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/simgunz/cinedual/icon"
	"github.com/simgunz/cinedual/mpv"
	"github.com/simgunz/cinedual/session"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().String("video-device", "", "Output device for the video player (skips the interactive picker)")
	playCmd.Flags().String("audio-device", "", "Output device for the audio-only player (skips the interactive picker)")
}

// playCmd starts a synchronized dual-audio playback session and supervises it
// until both player processes exit.
var playCmd = &cobra.Command{
	Use:   "play <movie> [<videoTrack> <audioTrack>]",
	Short: "Start a synchronized dual-audio playback session",
	Long: `Spawn two paused player processes for the same movie, route each one's
audio to its own output device, and resume them with the persisted delay
compensation applied. Track ids default to 1 (video player) and 2
(audio-only player).`,
	Example: "  cinedual play movie.mkv\n  cinedual play movie.mkv 1 3 --audio-device alsa/hdmi:CARD=PCH,DEV=3",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("expected <movie> alone or with both track ids, got %d arguments", len(args))
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		videoTrack, audioTrack := 1, 2
		if len(args) == 3 {
			videoTrack = parseTrackID(args[1], "video")
			audioTrack = parseTrackID(args[2], "audio")
		}

		videoDevice := lo.Must(cmd.Flags().GetString("video-device"))
		audioDevice := lo.Must(cmd.Flags().GetString("audio-device"))

		if videoDevice == "" || audioDevice == "" {
			devices, err := mpv.ListDevices()
			handleErr(err)

			if videoDevice == "" {
				videoDevice = pickDevice(fmt.Sprintf("%s output device for the video player:", icon.Get(icon.Movie)), devices)
			}
			if audioDevice == "" {
				audioDevice = pickDevice(fmt.Sprintf("%s output device for the audio-only player:", icon.Get(icon.Speaker)), devices)
			}
		}

		handleErr(session.Start(session.Options{
			MovieFile:   args[0],
			VideoTrack:  videoTrack,
			AudioTrack:  audioTrack,
			VideoDevice: videoDevice,
			AudioDevice: audioDevice,
		}))
	},
}

func parseTrackID(raw, label string) int {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		handleErr(fmt.Errorf("invalid %s track id %q: expected a positive integer", label, raw))
	}
	return id
}

// pickDevice runs the fuzzy device selection prompt and returns the chosen
// device identifier.
func pickDevice(message string, devices []mpv.Device) string {
	options := lo.Map(devices, func(d mpv.Device, _ int) string {
		return d.String()
	})

	var choice string
	err := survey.AskOne(&survey.Select{
		Message: message,
		Options: options,
		Filter: func(filter string, value string, _ int) bool {
			return fuzzy.MatchNormalizedFold(filter, value)
		},
	}, &choice)
	handleErr(err)

	return devices[lo.IndexOf(options, choice)].ID
}
