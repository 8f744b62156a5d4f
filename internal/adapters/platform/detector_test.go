package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.hermetik.dev/hermetik/internal/adapters/platform"
	"go.hermetik.dev/hermetik/internal/core/domain"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		os      string
		arch    string
		want    domain.PlatformKey
		wantErr bool
	}{
		{name: "go spellings", os: "linux", arch: "amd64", want: domain.PlatformLinuxAmd64},
		{name: "uname spellings", os: "Linux", arch: "x86_64", want: domain.PlatformLinuxAmd64},
		{name: "macos alias", os: "macos", arch: "aarch64", want: domain.PlatformDarwinArm64},
		{name: "osx alias", os: "osx", arch: "x64", want: domain.PlatformDarwinAmd64},
		{name: "windows", os: "win32", arch: "AMD64", want: domain.PlatformWindowsAmd64},
		{name: "whitespace tolerated", os: " darwin ", arch: "arm64", want: domain.PlatformDarwinArm64},
		{name: "unknown os", os: "plan9", arch: "amd64", wantErr: true},
		{name: "unknown arch", os: "linux", arch: "riscv64", wantErr: true},
		{name: "windows arm64 unsupported", os: "windows", arch: "arm64", wantErr: true},
		{name: "empty input", os: "", arch: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := platform.Detect(tt.os, tt.arch)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round-trips canonical keys", func(t *testing.T) {
		t.Parallel()
		got, err := platform.Parse("darwin_amd64")
		require.NoError(t, err)
		assert.Equal(t, domain.PlatformDarwinAmd64, got)
	})

	t.Run("rejects keys without a separator", func(t *testing.T) {
		t.Parallel()
		_, err := platform.Parse("darwinamd64")
		require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	})
}

func TestHost(t *testing.T) {
	t.Parallel()

	// The test suite only runs on platforms the detector supports.
	got, err := platform.Host()
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
