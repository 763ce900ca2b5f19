// Package cmd implements the command-line interface for cinedual.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/simgunz/cinedual/constant"
	"github.com/simgunz/cinedual/icon"
	"github.com/simgunz/cinedual/key"
	"github.com/simgunz/cinedual/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	_ = rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	})
	_ = viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons"))
}

// rootCmd defines the entry point for the cinedual application.
var rootCmd = &cobra.Command{
	Use:   constant.Cinedual,
	Short: "Play one movie with two audio tracks on two output devices, in sync",
	Long: `cinedual couples two player processes into one playback session:
one renders the video with the first audio track, the other plays only the
second audio track on a separate output device. A persisted delay
compensation keeps the two perceptually synchronized, and can be retuned at
runtime through the control command.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
