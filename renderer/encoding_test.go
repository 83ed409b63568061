package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeUTF8IsIdentity(t *testing.T) {
	in := []byte("Καλημέρα\n")
	for _, cs := range []string{"", "utf-8", "UTF8"} {
		out, err := Encode(in, cs)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestEncodeGreek(t *testing.T) {
	out, err := Encode([]byte("Α"), "iso-8859-7")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC1}, out)
}

func TestEncodeReplacesUnsupported(t *testing.T) {
	out, err := Encode([]byte("a€b"), "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, 3, len(out))
	assert.Equal(t, byte('a'), out[0])
	assert.Equal(t, byte('b'), out[2])
}

func TestEncodeUnknownCharset(t *testing.T) {
	_, err := Encode([]byte("x"), "klingon-1")
	assert.Error(t, err)
}
