// Package setup implements the interactive credential Set and Clear flows.
package setup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/canvasenv-cli/canvasenv/color"
	"github.com/canvasenv-cli/canvasenv/constant"
	"github.com/canvasenv-cli/canvasenv/envstore"
	"github.com/canvasenv-cli/canvasenv/icon"
	"github.com/canvasenv-cli/canvasenv/log"
	"github.com/canvasenv-cli/canvasenv/style"
	"github.com/canvasenv-cli/canvasenv/util"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/mo"
)

// AskFunc collects a single line of user input for the given prompt message.
type AskFunc func(message string) (string, error)

// Flow drives the Set and Clear sequences against an injected persistent
// store. The ask and environment functions are injectable so flows can run
// in tests without a TTY.
type Flow struct {
	Store    envstore.Store
	Ask      AskFunc
	Setenv   func(name, value string) error
	Unsetenv func(name string) error
	Out      io.Writer
}

// New returns a Flow wired to survey prompts and the process environment.
func New(store envstore.Store) *Flow {
	return &Flow{
		Store: store,
		Ask: func(message string) (string, error) {
			var answer string
			err := survey.AskOne(&survey.Input{Message: message}, &answer)
			return answer, err
		},
		Setenv:   os.Setenv,
		Unsetenv: os.Unsetenv,
		Out:      os.Stdout,
	}
}

// Set collects the API key and course URL and persists both. Present
// options carry explicitly supplied values that skip the corresponding
// prompt; absent options are collected interactively.
func (f *Flow) Set(apiKey, courseURL mo.Option[string]) error {
	resolvedKey, err := f.resolve(apiKey, "Canvas API key:", ValidateAPIKey, "api key")
	if err != nil {
		return err
	}

	resolvedURL, err := f.resolve(courseURL, "Canvas course URL:", ValidateCourseURL, "course url")
	if err != nil {
		return err
	}

	if err = f.Store.SetPersistent(constant.EnvAPIKey, resolvedKey); err != nil {
		return fmt.Errorf("persist %s: %w", constant.EnvAPIKey, err)
	}
	if err = f.Store.SetPersistent(constant.EnvCourseURL, resolvedURL); err != nil {
		return fmt.Errorf("persist %s: %w", constant.EnvCourseURL, err)
	}

	// Best-effort application to this process so descendants inherit the
	// values. The invoking shell is out of reach; the note below says so.
	_ = f.Setenv(constant.EnvAPIKey, resolvedKey)
	_ = f.Setenv(constant.EnvCourseURL, resolvedURL)

	log.Infof("persisted %s and %s", constant.EnvAPIKey, constant.EnvCourseURL)

	fmt.Fprintf(f.Out, "%s Credentials saved as %s and %s\n",
		icon.Get(icon.Success),
		style.Fg(color.Purple)(constant.EnvAPIKey),
		style.Fg(color.Purple)(constant.EnvCourseURL),
	)
	f.printRestartNote()

	return nil
}

// Clear removes both variables from the persistent store and from this
// process. Clearing values that were never set succeeds.
func (f *Flow) Clear() error {
	names := []string{constant.EnvAPIKey, constant.EnvCourseURL}

	for _, name := range names {
		if err := f.Store.ClearPersistent(name); err != nil {
			return fmt.Errorf("clear %s: %w", name, err)
		}
		_ = f.Unsetenv(name)
	}

	log.Infof("cleared %s and %s", constant.EnvAPIKey, constant.EnvCourseURL)

	fmt.Fprintf(f.Out, "%s Cleared %s\n",
		icon.Get(icon.Success),
		util.Quantify(len(names), "credential variable", "credential variables"),
	)
	f.printRestartNote()

	return nil
}

// resolve returns the explicit value when one was supplied, otherwise runs
// the prompt loop. Explicit values are validated but never re-prompted: a
// scripted invocation has no user to ask again, so an empty or malformed
// explicit value fails immediately.
func (f *Flow) resolve(explicit mo.Option[string], message string, validate func(string) error, label string) (string, error) {
	if value, present := explicit.Get(); present {
		value = strings.TrimSpace(value)
		if err := validate(value); err != nil {
			return "", fmt.Errorf("%s: %w", label, err)
		}
		return value, nil
	}

	return f.promptLoop(message, validate)
}

// promptLoop asks until validate accepts the trimmed input. Empty input and
// malformed values print a hint and re-prompt; only a failed read aborts.
func (f *Flow) promptLoop(message string, validate func(string) error) (string, error) {
	for {
		answer, err := f.Ask(message)
		if err != nil {
			return "", err
		}

		answer = strings.TrimSpace(answer)
		if err := validate(answer); err != nil {
			fmt.Fprintf(f.Out, "%s %s\n", icon.Get(icon.Fail), util.Capitalize(err.Error()))
			continue
		}

		return answer, nil
	}
}

// printRestartNote states the session limitation explicitly: a process can
// only affect its own descendants, never the shell that invoked it.
func (f *Flow) printRestartNote() {
	note := "Note: already-open shells keep their old environment. " +
		"Re-source your shell profile or start a new session for the change to take effect."

	width, _, err := util.TerminalSize()
	if err != nil || width <= 0 {
		width = 80
	}

	fmt.Fprintln(f.Out, style.Faint(wordwrap.String(note, width)))
}
