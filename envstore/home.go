package envstore

import (
	"path/filepath"
	"strings"

	"github.com/canvasenv-cli/canvasenv/where"
)

// expandHome resolves a leading "~" in configured profile paths.
func expandHome(path string) string {
	if path == "~" {
		return where.Home()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(where.Home(), path[2:])
	}
	return path
}
