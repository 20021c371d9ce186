// Package setup implements the interactive credential Set and Clear flows.
package setup

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/canvasenv-cli/canvasenv/util"
)

// courseURLPattern is the required shape of a Canvas course URL.
var courseURLPattern = regexp.MustCompile(`^https://(?P<host>[^/]+)/courses/(?P<id>[0-9]+)$`)

// ErrEmpty rejects blank prompt input.
var ErrEmpty = errors.New("value must not be empty")

// CourseRef is the decomposition of a validated course URL into the pieces a
// Canvas API client consumes.
type CourseRef struct {
	BaseURL  string `json:"base_url"`
	CourseID int    `json:"course_id"`
}

// ValidateAPIKey accepts any non-empty string; the key format is opaque.
func ValidateAPIKey(value string) error {
	if value == "" {
		return ErrEmpty
	}
	return nil
}

// ValidateCourseURL enforces the https://<host>/courses/<id> shape.
// Validation applies on every platform.
func ValidateCourseURL(value string) error {
	if value == "" {
		return ErrEmpty
	}
	if !courseURLPattern.MatchString(value) {
		return fmt.Errorf("%q does not match https://<host>/courses/<id>", value)
	}
	return nil
}

// ParseCourseURL splits a validated course URL into its base URL and integer
// course identifier.
func ParseCourseURL(value string) (CourseRef, error) {
	if err := ValidateCourseURL(value); err != nil {
		return CourseRef{}, err
	}

	groups := util.ReGroups(courseURLPattern, value)
	id, err := strconv.Atoi(groups["id"])
	if err != nil {
		return CourseRef{}, fmt.Errorf("course id: %w", err)
	}

	return CourseRef{
		BaseURL:  "https://" + groups["host"] + "/",
		CourseID: id,
	}, nil
}
