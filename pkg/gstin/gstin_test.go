package gstin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppHatchery-01/kirana-pos-easy/pkg/gstin"
)

func TestValidate_KnownGSTINs(t *testing.T) {
	for _, g := range []string{"27AAPFU0939F1ZV", "29AAGCB7383J1Z4", " 27aapfu0939f1zv "} {
		assert.NoError(t, gstin.Validate(g), g)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]string{
		"wrong check character": "07AAACR5055K1Z8",
		"too short":             "27AAPFU0939F1Z",
		"unknown state":         "45AAPFU0939F1ZV",
		"malformed PAN":         "271APFU0939F1ZV",
		"missing Z":             "27AAPFU0939F1AV",
		"zero entity":           "27AAPFU0939F0ZV",
	}
	for name, g := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, gstin.Validate(g))
		})
	}
}

func TestCheckChar(t *testing.T) {
	c, err := gstin.CheckChar("07AAACR5055K1Z")
	require.NoError(t, err)
	assert.Equal(t, byte('9'), c)

	_, err = gstin.CheckChar("07AAACR")
	assert.Error(t, err)
}
