package domain

import (
	"slices"
	"strconv"
	"strings"
)

// CompareVersions orders semver-like version strings ("1.235.0", "0.8.0").
// Numeric segments compare numerically, non-numeric segments lexically, and
// a shorter version sorts before a longer one with the same prefix. Returns
// -1, 0, or 1.
func CompareVersions(a, b string) int {
	as := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bs := strings.Split(strings.TrimPrefix(b, "v"), ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aok := atoi(as[i])
		bn, bok := atoi(bs[i])

		switch {
		case aok && bok:
			if an != bn {
				return sign(an - bn)
			}
		case aok != bok:
			// Numeric segments order before non-numeric ones.
			if aok {
				return -1
			}
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return sign(len(as) - len(bs))
}

// SortVersions sorts versions ascending in place and returns the slice.
func SortVersions(versions []string) []string {
	slices.SortFunc(versions, CompareVersions)
	return versions
}

// MaxVersion returns the highest version in the slice, or "" if empty.
func MaxVersion(versions []string) string {
	max := ""
	for _, v := range versions {
		if max == "" || CompareVersions(v, max) > 0 {
			max = v
		}
	}
	return max
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
