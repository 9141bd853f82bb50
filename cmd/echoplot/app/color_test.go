package app

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgb(c color.Color) (uint32, uint32, uint32) {
	r, g, b, _ := c.RGBA()
	return r, g, b
}

func TestColorMapper_NaNIsNoData(t *testing.T) {
	cm := NewColorMapper(MarineTheme, defaultSvBounds())
	assert.Equal(t, NoDataColor, cm.GetColor(math.NaN()))
}

func TestColorMapper_ClampsOutOfRange(t *testing.T) {
	cm := NewColorMapper(ClassicTheme, SvBounds{Min: -90, Max: -30})

	r1, g1, b1 := rgb(cm.GetColor(-200))
	r2, g2, b2 := rgb(cm.GetColor(-90))
	assert.Equal(t, [3]uint32{r2, g2, b2}, [3]uint32{r1, g1, b1})

	r1, g1, b1 = rgb(cm.GetColor(100))
	r2, g2, b2 = rgb(cm.GetColor(-30))
	assert.Equal(t, [3]uint32{r2, g2, b2}, [3]uint32{r1, g1, b1})
}

func TestColorMapper_EndsDiffer(t *testing.T) {
	for theme := range colorThemes {
		t.Run(string(theme), func(t *testing.T) {
			cm := NewColorMapper(theme, SvBounds{Min: -90, Max: -30})

			r1, g1, b1 := rgb(cm.GetColor(-90))
			r2, g2, b2 := rgb(cm.GetColor(-30))
			assert.NotEqual(t, [3]uint32{r1, g1, b1}, [3]uint32{r2, g2, b2})
		})
	}
}

func TestColorMapper_UpdateBounds(t *testing.T) {
	cm := NewColorMapper(GrayscaleTheme, SvBounds{Min: -90, Max: -30})
	require.Equal(t, DefaultColorMapSize, len(cm.colorMap))

	before, _, _ := rgb(cm.GetColor(-45))
	cm.UpdateBounds(SvBounds{Min: -50, Max: -40})
	after, _, _ := rgb(cm.GetColor(-45))

	// -45 dB sits near the top of the old window but mid-way in the new one.
	assert.Greater(t, before, after)
}
