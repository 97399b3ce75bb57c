package cli

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Truncation never lengthens a string, never exceeds the limit, and keeps
// short strings untouched.
func TestProperty_TruncateString(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("result length never exceeds the limit", prop.ForAll(
		func(s string, maxLen int) bool {
			return len(TruncateString(s, maxLen)) <= maxLen
		},
		gen.AlphaString(), gen.IntRange(0, 40),
	))

	properties.Property("short strings pass through unchanged", prop.ForAll(
		func(s string, maxLen int) bool {
			if len(s) > maxLen {
				return true
			}
			return TruncateString(s, maxLen) == s
		},
		gen.AlphaString(), gen.IntRange(0, 40),
	))

	properties.Property("long strings end with ellipsis", prop.ForAll(
		func(s string, maxLen int) bool {
			if len(s) <= maxLen || maxLen <= 3 {
				return true
			}
			got := TruncateString(s, maxLen)
			return len(got) == maxLen && strings.HasSuffix(got, "...")
		},
		gen.AlphaString(), gen.IntRange(4, 40),
	))

	properties.TestingRun(t)
}

// Padding always produces at least the requested width and preserves the
// original content.
func TestProperty_Padding(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("PadRight reaches the width and keeps the prefix", prop.ForAll(
		func(s string, width int) bool {
			got := PadRight(s, width)
			return len(got) >= width && len(got) >= len(s) && strings.HasPrefix(got, s)
		},
		gen.AlphaString(), gen.IntRange(0, 40),
	))

	properties.Property("PadLeft reaches the width and keeps the suffix", prop.ForAll(
		func(s string, width int) bool {
			got := PadLeft(s, width)
			return len(got) >= width && len(got) >= len(s) && strings.HasSuffix(got, s)
		},
		gen.AlphaString(), gen.IntRange(0, 40),
	))

	properties.TestingRun(t)
}
