// Package platform normalizes raw OS/architecture signals into canonical
// platform keys.
package platform

import (
	"runtime"
	"strings"

	"go.hermetik.dev/hermetik/internal/core/domain"
	"go.trai.ch/zerr"
)

// Vendor spellings seen in release assets, CI environments, and uname output.
var osAliases = map[string]string{
	"linux":          "linux",
	"darwin":         "darwin",
	"macos":          "darwin",
	"osx":            "darwin",
	"mac":            "darwin",
	"windows":        "windows",
	"win32":          "windows",
	"win64":          "windows",
	"windows-server": "windows",
	"mingw":          "windows",
}

var archAliases = map[string]string{
	"amd64":   "amd64",
	"x86_64":  "amd64",
	"x86-64":  "amd64",
	"x64":     "amd64",
	"arm64":   "arm64",
	"aarch64": "arm64",
}

// Detect normalizes an OS and architecture pair into a platform key.
// Unrecognized input fails with ErrUnsupportedPlatform; a silent default
// risks fetching a binary for the wrong architecture.
func Detect(rawOS, rawArch string) (domain.PlatformKey, error) {
	goos, ok := osAliases[strings.ToLower(strings.TrimSpace(rawOS))]
	if !ok {
		err := domain.WithField(domain.ErrUnsupportedPlatform, "os", rawOS)
		return "", zerr.With(err, "arch", rawArch)
	}

	goarch, ok := archAliases[strings.ToLower(strings.TrimSpace(rawArch))]
	if !ok {
		err := domain.WithField(domain.ErrUnsupportedPlatform, "os", rawOS)
		return "", zerr.With(err, "arch", rawArch)
	}

	key := domain.PlatformKey(goos + "_" + goarch)
	if key == domain.PlatformWindowsArm64 {
		// No upstream publishes windows/arm64 binaries yet.
		err := domain.WithField(domain.ErrUnsupportedPlatform, "os", rawOS)
		return "", zerr.With(err, "arch", rawArch)
	}
	return key, nil
}

// Host detects the platform of the running process.
func Host() (domain.PlatformKey, error) {
	return Detect(runtime.GOOS, runtime.GOARCH)
}

// Parse splits a canonical platform key back into its OS and architecture.
// It accepts only keys Detect can produce.
func Parse(key string) (domain.PlatformKey, error) {
	osPart, archPart, found := strings.Cut(key, "_")
	if !found {
		return "", domain.WithField(domain.ErrUnsupportedPlatform, "platform", key)
	}
	return Detect(osPart, archPart)
}
