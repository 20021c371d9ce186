// Package cmd implements the command-line interface for canvasenv.
package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/canvasenv-cli/canvasenv/color"
	"github.com/canvasenv-cli/canvasenv/config"
	"github.com/canvasenv-cli/canvasenv/constant"
	"github.com/canvasenv-cli/canvasenv/envstore"
	"github.com/canvasenv-cli/canvasenv/setup"
	"github.com/canvasenv-cli/canvasenv/style"
	"github.com/canvasenv-cli/canvasenv/where"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")
	envCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON object")
	envCmd.Flags().Bool("schema", false, "Print the JSON schema of the --json output")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")

	envCmd.SetOut(os.Stdout)
}

// variableReport is the state of one supported environment variable in the
// current process. For the managed credentials, Persisted carries the value
// stored in the environment store, which may lag behind or lead the process
// environment.
type variableReport struct {
	Name      string           `json:"name"`
	Set       bool             `json:"set"`
	Value     string           `json:"value,omitempty"`
	Persisted *string          `json:"persisted,omitempty"`
	Course    *setup.CourseRef `json:"course,omitempty"`
}

// envReport is the structured output of the env command.
type envReport struct {
	Variables []variableReport `json:"variables"`
}

// envCmd displays the current process values for all supported environment variables.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long: `Display the supported environment variables and their current process values.

The managed credentials come first, followed by the configuration overrides.
Note that values shown here are what this process inherited; a shell that was
already open when the credentials were saved may differ.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))
		asJson := lo.Must(cmd.Flags().GetBool("json"))
		asSchema := lo.Must(cmd.Flags().GetBool("schema"))

		if asSchema {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(jsonschema.Reflect(&envReport{})))
			return
		}

		supported := []string{constant.EnvAPIKey, constant.EnvCourseURL}

		configEnvs := lo.Map(config.EnvExposed, func(k string, _ int) string {
			return strings.ToUpper(constant.CanvasEnv + "_" + config.EnvKeyReplacer.Replace(k))
		})
		configEnvs = append(configEnvs, where.EnvConfigPath)
		slices.Sort(configEnvs)
		supported = append(supported, slices.Compact(configEnvs)...)

		store := envstore.New()
		managed := []string{constant.EnvAPIKey, constant.EnvCourseURL}

		report := envReport{}
		for _, env := range supported {
			value := os.Getenv(env)
			state := variableReport{Name: env, Set: value != "", Value: value}

			if slices.Contains(managed, env) {
				if persisted, ok, err := store.Lookup(env); err == nil && ok {
					state.Persisted = &persisted
				}
			}

			if env == constant.EnvCourseURL && state.Set {
				if ref, err := setup.ParseCourseURL(value); err == nil {
					state.Course = &ref
				}
			}

			if state.Set && unsetOnly || !state.Set && setOnly {
				continue
			}

			report.Variables = append(report.Variables, state)
		}

		if asJson {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			lo.Must0(encoder.Encode(report))
			return
		}

		for _, state := range report.Variables {
			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(state.Name))
			cmd.Print("=")

			if state.Set {
				cmd.Println(style.Fg(color.Green)(state.Value))
			} else {
				cmd.Println(style.Fg(color.Red)("unset"))
			}

			switch {
			case state.Persisted != nil && !state.Set:
				cmd.Println(style.Faint("  persisted but not in this session; open a new terminal"))
			case state.Persisted != nil && *state.Persisted != state.Value:
				cmd.Println(style.Faint("  persisted value differs; open a new terminal"))
			case state.Persisted == nil && state.Set && slices.Contains(managed, state.Name):
				cmd.Println(style.Faint("  set in this session but not persisted"))
			}

			if state.Course != nil {
				cmd.Println(style.Faint("  base url: " + state.Course.BaseURL))
				cmd.Printf("%s %d\n", style.Faint("  course id:"), state.Course.CourseID)
			}
		}
	},
}
