// Package version compares build versions.
package version

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Dev is the version string of builds without -ldflags.
const Dev = "(devel)"

var ErrDevBuild = errors.New("development build has no comparable version")

// Status is the result of comparing the running version with another one.
type Status int

const (
	Older Status = -1 // running version is older than the other
	Same  Status = 0
	Newer Status = 1
)

func (s Status) String() string {
	switch s {
	case Older:
		return "older"
	case Newer:
		return "newer"
	default:
		return "same"
	}
}

// Canonical normalizes v to "vMAJOR.MINOR.PATCH[-pre]" form, adding the
// leading "v" when missing.
func Canonical(v string) (string, error) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version %q", strings.TrimPrefix(v, "v"))
	}
	return semver.Canonical(v), nil
}

// Compare reports how current relates to other.
func Compare(current, other string) (Status, error) {
	if current == Dev || current == "" {
		return Same, ErrDevBuild
	}
	cur, err := Canonical(current)
	if err != nil {
		return Same, fmt.Errorf("current: %w", err)
	}
	oth, err := Canonical(other)
	if err != nil {
		return Same, fmt.Errorf("other: %w", err)
	}
	return Status(semver.Compare(cur, oth)), nil
}
