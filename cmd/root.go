// Package cmd implements the command-line interface for canvasenv.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/canvasenv-cli/canvasenv/color"
	"github.com/canvasenv-cli/canvasenv/constant"
	"github.com/canvasenv-cli/canvasenv/envstore"
	"github.com/canvasenv-cli/canvasenv/icon"
	"github.com/canvasenv-cli/canvasenv/key"
	"github.com/canvasenv-cli/canvasenv/log"
	"github.com/canvasenv-cli/canvasenv/setup"
	"github.com/canvasenv-cli/canvasenv/style"
	"github.com/canvasenv-cli/canvasenv/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().Bool("clear", false, "Remove the stored credentials instead of setting them")
	rootCmd.Flags().String("api-key", "", "Canvas API key; skips the interactive prompt")
	rootCmd.Flags().String("course-url", "", "Canvas course URL; skips the interactive prompt")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, square)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the canvasenv application.
// Without flags it runs the interactive Set flow; --clear runs the Clear flow.
var rootCmd = &cobra.Command{
	Use:   constant.CanvasEnv,
	Short: "Persist Canvas API credentials as user environment variables",
	Long: constant.AsciiArtLogo + "\n" +
		style.Italic(style.Fg(color.HiRed)("    - Persist Canvas API credentials as user environment variables")),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		flow := setup.New(envstore.New())

		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(flow.Clear())
			return
		}

		handleErr(flow.Set(
			flagOption(cmd, "api-key"),
			flagOption(cmd, "course-url"),
		))
	},
}

// flagOption distinguishes a flag the user actually passed from one left at
// its default, so an explicit empty value is rejected rather than prompted for.
func flagOption(cmd *cobra.Command, name string) mo.Option[string] {
	if !cmd.Flags().Changed(name) {
		return mo.None[string]()
	}

	return mo.Some(lo.Must(cmd.Flags().GetString(name)))
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
