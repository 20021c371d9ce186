// Package constant defines immutable application-level identifiers.
package constant

const (
	// CanvasEnv is the canonical application identifier used for filesystem paths and CLI branding.
	CanvasEnv = "canvasenv"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)

// Managed environment variable names. The persisted state under these names
// is the entire external interface of the tool.
const (
	EnvAPIKey    = "CANVAS_API_KEY"
	EnvCourseURL = "CANVAS_COURSE_URL"
)
