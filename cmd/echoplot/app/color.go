package app

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorTheme selects a predefined color scheme for Sv visualization:
// - ClassicTheme: traditional blue-to-red echogram ramp
// - GrayscaleTheme: monochrome, dark = weak scattering
// - ThermalTheme: black to red to yellow to white heat map
// - MarineTheme: deep blue through cyan to white
type ColorTheme string

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
	ThermalTheme   ColorTheme = "thermal"
	MarineTheme    ColorTheme = "marine"

	DefaultColorMapSize = 256

	hueStart = 236.0
	hueEnd   = 0.0
)

// NoDataColor is drawn for NaN samples.
var NoDataColor = color.White

var colorThemes = map[ColorTheme]func(float64) color.Color{
	ClassicTheme:   classicColor,
	GrayscaleTheme: grayscaleColor,
	ThermalTheme:   thermalColor,
	MarineTheme:    marineColor,
}

// classicColor maps a normalized value [0,1] onto a blue-to-red HSV ramp.
func classicColor(v float64) color.Color {
	span := hueStart - hueEnd
	hue := hueStart - v*span
	hue = math.Min(math.Max(hue, hueEnd), hueStart)
	return colorful.Hsv(hue, 1, 0.90)
}

func grayscaleColor(v float64) color.Color {
	return colorful.Color{R: v, G: v, B: v}.Clamped()
}

func thermalColor(v float64) color.Color {
	stops := []colorful.Color{
		{R: 0, G: 0, B: 0},
		{R: 0.8, G: 0, B: 0},
		{R: 1, G: 0.9, B: 0},
		{R: 1, G: 1, B: 1},
	}
	return blendStops(stops, v)
}

func marineColor(v float64) color.Color {
	stops := []colorful.Color{
		{R: 0.01, G: 0.03, B: 0.25},
		{R: 0, G: 0.35, B: 0.75},
		{R: 0.1, G: 0.85, B: 0.95},
		{R: 1, G: 1, B: 1},
	}
	return blendStops(stops, v)
}

func blendStops(stops []colorful.Color, v float64) color.Color {
	v = math.Max(0, math.Min(1, v))
	pos := v * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1].Clamped()
	}
	return stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped()
}

// ColorMapper provides Sv-to-color mapping with a pre-computed gradient.
type ColorMapper struct {
	colorMap   []color.Color
	theme      func(float64) color.Color
	size       int
	boundsMin  float64
	svPerIndex float64
}

// NewColorMapper creates a color mapper for the theme and bounds using the
// default gradient size.
func NewColorMapper(theme ColorTheme, bounds SvBounds) *ColorMapper {
	cm := &ColorMapper{
		colorMap: make([]color.Color, DefaultColorMapSize),
		theme:    colorThemes[theme],
		size:     DefaultColorMapSize,
	}
	cm.UpdateBounds(bounds)
	return cm
}

// UpdateBounds updates the display bounds and recomputes the gradient.
func (cm *ColorMapper) UpdateBounds(bounds SvBounds) {
	cm.boundsMin = bounds.Min
	cm.svPerIndex = (bounds.Max - bounds.Min) / float64(cm.size-1)

	for i := 0; i < cm.size; i++ {
		normalized := float64(i) / float64(cm.size-1)
		cm.colorMap[i] = cm.theme(normalized)
	}
}

// GetColor maps one Sv sample to a color. NaN gets NoDataColor.
func (cm *ColorMapper) GetColor(sv float64) color.Color {
	if math.IsNaN(sv) {
		return NoDataColor
	}

	index := int((sv - cm.boundsMin) / cm.svPerIndex)
	if index < 0 {
		index = 0
	}
	if index >= cm.size {
		index = cm.size - 1
	}
	return cm.colorMap[index]
}
