package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

const (
	defaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"

	dpi            = 120.0
	fontSize       = 12.0
	tickMarkLength = 5
	pixelsPerLabel = 150.0

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 80
	defaultBottomBorder = 40
	defaultRightBorder  = 40

	defaultTimeFormat     = "15:04"
	defaultDatetimeFormat = time.DateTime
)

// BorderConfig defines the sizes of white space around the echogram.
type BorderConfig struct {
	Top    int // Space for time scale
	Left   int // Space for depth/range scale
	Bottom int // Space for information bar
	Right  int // Right padding
}

// RenderConfig holds all configuration options for echogram visualization.
type RenderConfig struct {
	// Time display configuration
	TimeFormat     string         // Format string for time labels (e.g. "15:04")
	DatetimeFormat string         // Format string for date/time display
	Location       *time.Location // Timezone for time display

	// Visual configuration
	FontPath    string     // TrueType font file for annotations
	FontSize    float64    // Font size in points
	ColorTheme  ColorTheme // Color scheme for Sv values
	Annotations bool       // Draw scales and info bar

	// Border configuration
	BorderConfig BorderConfig
}

// EchogramRenderer draws a grid as an echogram: pings on the horizontal
// axis, range/depth increasing downward.
type EchogramRenderer struct {
	colorMap *ColorMapper
	config   RenderConfig
}

// NewEchogramRenderer creates a renderer with the given configuration.
func NewEchogramRenderer(config RenderConfig) (*EchogramRenderer, error) {
	if config.TimeFormat == "" {
		config.TimeFormat = defaultTimeFormat
	}
	if config.DatetimeFormat == "" {
		config.DatetimeFormat = defaultDatetimeFormat
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.FontPath == "" {
		config.FontPath = defaultFontPath
	}
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.ColorTheme == "" {
		config.ColorTheme = MarineTheme
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	return &EchogramRenderer{config: config}, nil
}

// Render creates an annotated image of the grid using the given display
// bounds. The grid is expected to hold log-domain (Sv/Sp) data.
func (r *EchogramRenderer) Render(g *echogram.Grid, bounds SvBounds) (*image.RGBA, error) {
	width := g.NPings()
	height := g.NSamples()

	fullWidth := width + r.config.BorderConfig.Left + r.config.BorderConfig.Right
	fullHeight := height + r.config.BorderConfig.Top + r.config.BorderConfig.Bottom
	img := image.NewRGBA(image.Rect(0, 0, fullWidth, fullHeight))

	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Echogram area, 1:1 pixel mapping
	area := image.Rect(
		r.config.BorderConfig.Left,
		r.config.BorderConfig.Top,
		r.config.BorderConfig.Left+width,
		r.config.BorderConfig.Top+height,
	)

	if r.colorMap == nil {
		r.colorMap = NewColorMapper(r.config.ColorTheme, bounds)
	} else {
		r.colorMap.UpdateBounds(bounds)
	}

	if r.config.Annotations {
		ann, err := newAnnotator(annotatorConfig{
			TimeFormat:     r.config.TimeFormat,
			DatetimeFormat: r.config.DatetimeFormat,
			Location:       r.config.Location,
			FontPath:       r.config.FontPath,
			FontSize:       r.config.FontSize,
			Borders:        r.config.BorderConfig,
		})
		if err != nil {
			return nil, fmt.Errorf("creating annotator: %w", err)
		}
		defer ann.Close()

		if err = ann.annotate(img, g, bounds); err != nil {
			return nil, fmt.Errorf("drawing annotations: %w", err)
		}
	}

	r.renderSamples(img, area, g)

	return img, nil
}

// renderSamples draws the sample data using the color map, one pixel per
// cell.
func (r *EchogramRenderer) renderSamples(img *image.RGBA, area image.Rectangle, g *echogram.Grid) {
	for x, row := range g.Samples() {
		imgX := area.Min.X + x
		for y, sv := range row {
			img.Set(imgX, area.Min.Y+y, r.colorMap.GetColor(sv))
		}
	}
}

// Internal annotator implementation

type annotatorConfig struct {
	TimeFormat     string
	DatetimeFormat string
	Location       *time.Location
	FontPath       string
	FontSize       float64
	Borders        BorderConfig
}

type annotator struct {
	context  *freetype.Context
	config   annotatorConfig
	fontFace font.Face
}

func newAnnotator(config annotatorConfig) (*annotator, error) {
	fontBytes, err := os.ReadFile(config.FontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		config:  config,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, g *echogram.Grid, bounds SvBounds) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	if err := a.drawTimeScale(img, g); err != nil {
		return fmt.Errorf("drawing time scale: %w", err)
	}
	if err := a.drawDepthScale(img, g); err != nil {
		return fmt.Errorf("drawing depth scale: %w", err)
	}
	if err := a.drawInfoBar(img, g, bounds); err != nil {
		return fmt.Errorf("drawing info bar: %w", err)
	}

	return nil
}

// drawTimeScale labels the horizontal (ping time) axis along the top border.
func (a *annotator) drawTimeScale(img *image.RGBA, g *echogram.Grid) error {
	times := g.PingTime()
	if len(times) < 2 {
		return nil
	}
	start, end := times[0], times[len(times)-1]
	duration := end.Sub(start)
	if duration <= 0 {
		return nil
	}
	timeStep := calculateNiceTimeStep(duration, g.NPings())

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := a.config.Borders.Top - tickMarkLength - fontHeight/2

	for ts := start.Truncate(timeStep); !ts.After(end); ts = ts.Add(timeStep) {
		if ts.Before(start) {
			continue
		}
		xRatio := float64(ts.Sub(start)) / float64(duration)
		x := a.config.Borders.Left + int(xRatio*float64(g.NPings()))

		for y := a.config.Borders.Top - tickMarkLength; y < a.config.Borders.Top; y++ {
			img.Set(x, y, color.Black)
		}

		label := ts.In(a.config.Location).Format(a.config.TimeFormat)
		width := font.MeasureString(a.fontFace, label)
		pt := freetype.Pt(x-(width.Round()/2), textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing time label: %w", err)
		}
	}
	return nil
}

// drawDepthScale labels the vertical (range or depth) axis along the left
// border.
func (a *annotator) drawDepthScale(img *image.RGBA, g *echogram.Grid) error {
	kind, axis, err := g.Axis()
	if err != nil {
		return err
	}
	if len(axis) < 2 {
		return nil
	}

	span := axis[len(axis)-1] - axis[0]
	step := calculateNiceDepthStep(span, g.NSamples())

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	for depth := math.Ceil(axis[0]/step) * step; depth <= axis[len(axis)-1]; depth += step {
		yRatio := (depth - axis[0]) / span
		imgY := a.config.Borders.Top + int(yRatio*float64(g.NSamples()))

		for x := a.config.Borders.Left - tickMarkLength; x < a.config.Borders.Left; x++ {
			img.Set(x, imgY, color.Black)
		}

		label := fmt.Sprintf("%.0f m", depth)
		textY := imgY + fontHeight/2 - metrics.Descent.Round()
		pt := freetype.Pt(10, textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing %s label: %w", kind, err)
		}
	}
	return nil
}

// drawInfoBar summarizes the channel in the bottom border.
func (a *annotator) drawInfoBar(img *image.RGBA, g *echogram.Grid, bounds SvBounds) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s @ %s", strings.Join(g.ChannelID, ","), humanize.SI(g.Frequency, "Hz")))
	sb.WriteString("; ")

	times := g.PingTime()
	if len(times) > 0 {
		sb.WriteString(fmt.Sprintf("Time: %s - %s",
			times[0].In(a.config.Location).Format(a.config.DatetimeFormat),
			times[len(times)-1].In(a.config.Location).Format(a.config.DatetimeFormat)))
		sb.WriteString("; ")
	}

	sb.WriteString(fmt.Sprintf("%s: %.0f to %.0f dB", g.DataType(), bounds.Min, bounds.Max))
	sb.WriteString(fmt.Sprintf("; %s pings; 1px = %.2f m", humanize.Comma(int64(g.NPings())), g.SampleThickness))

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := img.Bounds().Max.Y - (a.config.Borders.Bottom-fontHeight)/2 - metrics.Descent.Round()

	pt := freetype.Pt(a.config.Borders.Left, textY)
	if _, err := a.context.DrawString(sb.String(), pt); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}

	return nil
}

// Helper functions

func calculateNiceTimeStep(duration time.Duration, width int) time.Duration {
	desiredLabels := math.Max(float64(width)/pixelsPerLabel, 2)
	roughStep := duration.Seconds() / desiredLabels

	// Nice time intervals in seconds
	niceIntervals := []float64{
		1, 5, 10, 30,
		60,    // 1 minute
		300,   // 5 minutes
		600,   // 10 minutes
		900,   // 15 minutes
		1800,  // 30 minutes
		3600,  // 1 hour
		7200,  // 2 hours
		14400, // 4 hours
	}

	for _, interval := range niceIntervals {
		if roughStep <= interval {
			return time.Duration(interval) * time.Second
		}
	}

	return time.Hour * 6 // Default for very long recordings
}

func calculateNiceDepthStep(span float64, height int) float64 {
	steps := []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}

	desiredSteps := math.Max(float64(height)/pixelsPerLabel, 2)
	targetStep := span / desiredSteps

	for _, step := range steps {
		if step >= targetStep && span/step >= 2 {
			return step
		}
	}

	return span / 2
}
