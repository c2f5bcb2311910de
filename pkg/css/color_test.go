package css

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  color.RGBA
	}{
		{"red", true, color.RGBA{255, 0, 0, 255}},
		{"Blue", true, color.RGBA{0, 0, 255, 255}},
		{"gray", true, color.RGBA{128, 128, 128, 255}},
		{"lightblue", true, color.RGBA{173, 216, 230, 255}},
		{"orange", true, color.RGBA{255, 165, 0, 255}},
		{"#ff0000", true, color.RGBA{255, 0, 0, 255}},
		{"#0f0", true, color.RGBA{0, 255, 0, 255}},
		{"#00000000", true, color.RGBA{}},
		{"transparent", true, color.RGBA{}},
		{"#12345", false, color.RGBA{}},
		{"#zzzzzz", false, color.RGBA{}},
		{"notacolor", false, color.RGBA{}},
		{"", false, color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c := ParseColor(tt.input)
			assert.Equal(t, tt.ok, c.OK)
			assert.Equal(t, tt.want, c.RGBA)
			assert.Equal(t, tt.input, c.Raw)
		})
	}
}

func TestColorConcrete(t *testing.T) {
	assert.True(t, ParseColor("gray").Concrete())
	assert.False(t, ParseColor("transparent").Concrete())
	assert.False(t, ParseColor("bogus").Concrete())
	assert.Equal(t, Black, ParseColor("bogus").Or(Black))
}
