package binding

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

const partnerJSON = `{"partner":{"name":"Agrolait","lines":[{"qty":3},{"qty":4.5}]},"empty":null,"grid":[[1,2],[3,4]]}`

func TestInterpolate(t *testing.T) {
	data := decode(t, partnerJSON)

	cases := []struct {
		in, want string
		missing  []string
	}{
		{"Dear [[ partner.name ]],", "Dear Agrolait,", nil},
		{"[[partner.lines[0].qty]] / [[ partner.lines[1].qty ]]", "3 / 4.5", nil},
		{"[[ grid[1][0] ]]", "3", nil},
		{"[[ empty ]]!", "!", nil},
		{"[[ partner.missing ]]", "[[ partner.missing ]]", []string{"partner.missing"}},
		{"[[ partner.lines[9].qty ]] [[ x ]]", "[[ partner.lines[9].qty ]] [[ x ]]", []string{"partner.lines[9].qty", "x"}},
		{"no placeholders", "no placeholders", nil},
	}
	for _, tc := range cases {
		got, missing := Interpolate(tc.in, data)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.missing, missing, tc.in)
	}
}

func TestInterpolateWithoutData(t *testing.T) {
	got, missing := Interpolate("[[ x ]]", nil)
	assert.Equal(t, "[[ x ]]", got)
	assert.Nil(t, missing)
}

func TestLookupErrors(t *testing.T) {
	data := decode(t, partnerJSON)
	for _, path := range []string{
		"partner..name",
		"partner.lines[a]",
		"partner.lines[0",
		"partner.lines[0]x",
		"partner.name.first",
		"grid[-1]",
	} {
		_, err := Lookup(data, path)
		require.Error(t, err, path)
		assert.True(t, errors.Is(err, ErrUnresolvedPath), "%s: %v", path, err)
	}

	v, err := Lookup(data, "partner.lines[1].qty")
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)
}

func TestHasPlaceholder(t *testing.T) {
	assert.True(t, HasPlaceholder("a [[ b ]] c"))
	assert.False(t, HasPlaceholder("a [ b ] c"))
}
