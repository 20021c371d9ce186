// Package main is the entry point for the canvasenv application.
package main

import (
	"github.com/canvasenv-cli/canvasenv/cmd"
	"github.com/canvasenv-cli/canvasenv/config"
	"github.com/canvasenv-cli/canvasenv/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
