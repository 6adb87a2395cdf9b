package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailFormatValid(t *testing.T) {
	cases := map[string]bool{
		"ana@example.com":        true,
		"ana.silva+x@mail.co.uk": true,
		"":                       false,
		"ana":                    false,
		"ana@":                   false,
		"ana@localhost":          false,
		"Ana <ana@example.com>":  false,
		"ana@example.":           false,
		"ana @example.com":       false,
	}

	for in, want := range cases {
		assert.Equal(t, want, IsEmailFormatValid(in), in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
