package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.hermetik.dev/hermetik/internal/core/domain"
)

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.235.0", b: "1.235.0", want: 0},
		{name: "patch ordering", a: "1.235.0", b: "1.235.1", want: -1},
		{name: "numeric not lexical", a: "1.9.0", b: "1.10.0", want: -1},
		{name: "major wins", a: "2.0.0", b: "1.99.99", want: 1},
		{name: "v prefix ignored", a: "v1.2.3", b: "1.2.3", want: 0},
		{name: "shorter sorts first", a: "1.2", b: "1.2.0", want: -1},
		{name: "numeric before non-numeric", a: "1.2.0", b: "1.2.rc1", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, domain.CompareVersions(tt.a, tt.b))
		})
	}
}

func TestSortVersions(t *testing.T) {
	t.Parallel()

	got := domain.SortVersions([]string{"1.10.0", "0.8.0", "1.9.0", "1.235.0"})
	assert.Equal(t, []string{"0.8.0", "1.9.0", "1.10.0", "1.235.0"}, got)
}

func TestMaxVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.235.0", domain.MaxVersion([]string{"1.9.0", "1.235.0", "1.10.0"}))
	assert.Empty(t, domain.MaxVersion(nil))
}
