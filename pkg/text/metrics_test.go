package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprox(t *testing.T) {
	f := FontSpec{Size: 10}
	var m Metrics = Approx{}
	assert.Equal(t, 30.0, m.Measure("abcde", f))
	assert.Equal(t, 6.0, m.Measure("é", f))
	assert.Equal(t, 8.0, m.Ascent(f))
	assert.Equal(t, 2.0, m.Descent(f))
	assert.Equal(t, 12.0, m.Linespace(f))
}

func TestFontSpecMono(t *testing.T) {
	assert.True(t, FontSpec{Family: "Courier"}.Mono())
	assert.True(t, FontSpec{Family: "monospace"}.Mono())
	assert.False(t, FontSpec{Family: "Times"}.Mono())
}

func TestGoFonts(t *testing.T) {
	g, err := NewGoFonts()
	require.NoError(t, err)

	normal := FontSpec{Size: 16, Family: "Times"}
	boldSpec := FontSpec{Size: 16, Bold: true, Family: "Times"}
	big := FontSpec{Size: 32, Family: "Times"}

	w := g.Measure("Hello", normal)
	assert.Greater(t, w, 0.0)
	assert.Greater(t, g.Measure("Hello", big), w)
	assert.Greater(t, g.Measure("Hello world", normal), w)
	assert.Equal(t, 0.0, g.Measure("", normal))
	assert.NotEqual(t, w, g.Measure("Hello", boldSpec))

	assert.Greater(t, g.Ascent(normal), 0.0)
	assert.Greater(t, g.Descent(normal), 0.0)
	assert.GreaterOrEqual(t, g.Linespace(normal), g.Ascent(normal))

	assert.Same(t, g.Face(normal), g.Face(normal), "faces are cached")

	monoSpec := FontSpec{Size: 16, Family: "Courier"}
	assert.InDelta(t, g.Measure("iii", monoSpec), g.Measure("MMM", monoSpec), 0.01)
}
