package setup

import (
	"errors"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/mod/semver"
)

// FallbackVersion is used when the target version can't be read.
const FallbackVersion = "0.0.0"

// ErrEmptyVersion is returned by version sources holding only whitespace.
var ErrEmptyVersion = errors.New("setup version is empty")

// VersionSource supplies the target schema version.
type VersionSource interface {
	Version() (string, error)
}

// FileVersion reads the version from a small text file.
type FileVersion string

// Version implements VersionSource.
func (f FileVersion) Version() (string, error) {
	b, err := os.ReadFile(string(f))
	if err != nil {
		return "", pkgerrors.Wrapf(err, "version file not found at %s", string(f))
	}

	return trimVersion(string(b))
}

// StaticVersion is a version fixed at build time.
type StaticVersion string

// Version implements VersionSource.
func (s StaticVersion) Version() (string, error) {
	return trimVersion(string(s))
}

func trimVersion(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", ErrEmptyVersion
	}

	return v, nil
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}

	return v
}

// ValidVersion reports whether v is a semantic version, with or without the leading v.
func ValidVersion(v string) bool {
	return semver.IsValid(canonical(v))
}

// AtLeast reports whether current >= target. An unparsable current version is always behind.
func AtLeast(current, target string) bool {
	c, t := canonical(current), canonical(target)
	if !semver.IsValid(c) {
		return false
	}
	if !semver.IsValid(t) {
		return true
	}

	return semver.Compare(c, t) >= 0
}
