package titleparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"brackets removed", "Song [Official Video]", "Song"},
		{"parens removed", "Artist - Song (Live at Wembley)", "Artist - Song"},
		{"noise phrases removed", "Artist - Song Official Music Video HD", "Artist - Song"},
		{"feature credit removed", "Artist ft. Other - Song", "Artist Other - Song"},
		{"pipe to hyphen", "Artist | Song", "Artist - Song"},
		{"bullet to hyphen", "Artist • Song", "Artist - Song"},
		{"whitespace collapsed", "Artist   -    Song", "Artist - Song"},
		{"empty", "", ""},
		{"only noise", "(Official Video) [HD]", ""},
		{"unicode preserved", "Björk - Jóga", "Björk - Jóga"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"The Beatles - Hey Jude",
		"Artist - Song (Official Video) [HD] | Lyrics",
		"奇妙な曲 【MV】",
		"Song 🎵 ft. Someone",
		"(((((",
		"a | b • c ● d",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize not idempotent for %q", in)
	}
}

func TestCompareKey(t *testing.T) {
	assert.Equal(t, "bjork joga", CompareKey("Björk Jóga"))
	assert.Equal(t, "hey jude", CompareKey("HEY JUDE"))
	assert.Equal(t, CompareKey("Ｈｅｙ"), CompareKey("Hey"), "width forms should fold")
}
