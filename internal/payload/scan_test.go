package payload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBalancedObject(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		want  string
	}{
		{"flat", `{"a":1}`, 0, `{"a":1}`},
		{"nested", `{"a":{"b":{"c":3}}}trailing`, 0, `{"a":{"b":{"c":3}}}`},
		{"offset start", `x = {"a":1}; var y`, 4, `{"a":1}`},
		{
			// An unmatched close brace inside a quoted string must not
			// terminate the scan early.
			"brace inside string",
			`{"a":"}}}","b":2}`,
			0,
			`{"a":"}}}","b":2}`,
		},
		{
			"escaped quote inside string",
			`{"a":"he said \"}\"","b":2}`,
			0,
			`{"a":"he said \"}\"","b":2}`,
		},
		{
			"single quotes",
			`{key:'val}ue',n:1}`,
			0,
			`{key:'val}ue',n:1}`,
		},
		{
			"backslash before closing quote",
			`{"path":"C:\\","n":1}`,
			0,
			`{"path":"C:\\","n":1}`,
		},
		{"minimal span", `{"a":1}{"b":2}`, 0, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBalancedObject(tt.text, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractBalancedObjectErrors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
	}{
		{"never closes", `{"a":{"b":1}`, 0},
		{"open inside unterminated string", `{"a":"....`, 0},
		{"start not a brace", `x{"a":1}`, 0},
		{"start out of range", `{}`, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractBalancedObject(tt.text, tt.start)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedLiteral))
		})
	}
}

func TestExtractBalancedArray(t *testing.T) {
	got, err := ExtractBalancedArray(`[{"m":1},{"m":"]"}] ,`, 0)
	require.NoError(t, err)
	assert.Equal(t, `[{"m":1},{"m":"]"}]`, got)

	_, err = ExtractBalancedArray(`[1,2`, 0)
	assert.True(t, errors.Is(err, ErrMalformedLiteral))
}
