package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/restore/internal/core/domain"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "v1.0.0", canonical("1.0"))
	assert.Equal(t, "v1.2.3", canonical("1.2.3.0"))
	assert.Equal(t, "v2.0.0-beta.1", canonical("2.0.0-beta.1+sha.abc"))
	assert.Empty(t, canonical("latest"))
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		text  string
		match []string
		miss  []string
	}{
		{text: "1.0.0", match: []string{"1.0.0", "2.0.0"}, miss: []string{"0.9.0", "1.1.0-beta"}},
		{text: "[1.0.0]", match: []string{"1.0.0"}, miss: []string{"1.0.1"}},
		{text: "[1.0,2.0)", match: []string{"1.0.0", "1.9.9"}, miss: []string{"2.0.0"}},
		{text: "(1.0,]", match: []string{"1.0.1"}, miss: []string{"1.0.0"}},
		{text: domain.AllVersions, match: []string{"0.0.1", "9.0.0"}, miss: []string{"1.0.0-alpha"}},
		{text: "1.2.*", match: []string{"1.2.0", "1.2.7"}, miss: []string{"1.3.0"}},
		{text: "1.0.0-beta", match: []string{"1.0.0-rc.1", "1.0.0"}, miss: []string{"1.0.0-alpha"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			vr, err := parseRange(tt.text)
			require.NoError(t, err)
			for _, v := range tt.match {
				assert.True(t, vr.satisfies(v), v)
			}
			for _, v := range tt.miss {
				assert.False(t, vr.satisfies(v), v)
			}
		})
	}
}

func TestParseRange_Invalid(t *testing.T) {
	for _, text := range []string{"[1.0", "(1.0.0)", "[2.0,1.0]", "abc", "[x,2.0]"} {
		_, err := parseRange(text)
		require.Error(t, err, text)
		assert.Contains(t, err.Error(), domain.ErrInvalidVersionRange.Error())
	}
}

func TestVersionRange_Best(t *testing.T) {
	available := []string{"2.0.0", "1.5.0", "1.2.0", "1.2.9"}

	vr, err := parseRange("1.1.0")
	require.NoError(t, err)
	best, ok := vr.best(available)
	require.True(t, ok)
	assert.Equal(t, "1.2.0", best, "lowest applicable version wins")

	vr, err = parseRange("1.2.*")
	require.NoError(t, err)
	best, ok = vr.best(available)
	require.True(t, ok)
	assert.Equal(t, "1.2.9", best, "floating ranges take the highest match")

	vr, err = parseRange("[3.0.0,)")
	require.NoError(t, err)
	_, ok = vr.best(available)
	assert.False(t, ok)
}

func TestVersionRange_String(t *testing.T) {
	for text, want := range map[string]string{
		"1.0.0":     ">= 1.0.0",
		"[1.0.0]":   "= 1.0.0",
		"[1.0,2.0)": ">= 1.0 && < 2.0",
		"":          "(, )",
	} {
		vr, err := parseRange(text)
		require.NoError(t, err)
		assert.Equal(t, want, vr.String(), text)
	}
}
