package app

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

type ImageFormat string

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

type Config struct {
	DBPath        string
	SessionID     int64
	ChannelID     string
	OutputFile    string
	Format        ImageFormat
	FontPath      string
	Theme         ColorTheme
	TimeZone      *time.Location
	MinSv         *float64
	MaxSv         *float64
	Verbose       bool
	NoAnnotations bool
}

func NewConfig() *Config {
	return &Config{
		Format:   ImagePNG,
		Theme:    MarineTheme,
		TimeZone: time.Local,
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat, theme, tz string
	var minSv, maxSv float64
	flag.StringVar(&c.DBPath, "db", "", "Path to the database file")
	flag.Int64Var(&c.SessionID, "s", 1, "Session ID")
	flag.StringVar(&c.ChannelID, "c", "", "Channel ID to render")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.StringVar(&theme, "theme", string(MarineTheme), "Color theme. [classic, grayscale, thermal, marine]")
	flag.StringVar(&c.FontPath, "font", defaultFontPath, "Path to a TrueType font for annotations")
	flag.StringVar(&tz, "tz", "", "Timezone for time labels (e.g. UTC); defaults to local")
	flag.Float64Var(&minSv, "min-sv", 0, "Define a manual minimum Sv in dB (format -nn.n)")
	flag.Float64Var(&maxSv, "max-sv", 0, "Define a manual maximum Sv in dB (format -nn.n)")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.BoolVar(&c.NoAnnotations, "no-annotations", false, "Disable annotations such as time and depth scales")
	flag.Parse()

	imageFormat = strings.ToLower(imageFormat)

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "min-sv" {
			c.MinSv = &minSv
		}
		if f.Name == "max-sv" {
			c.MaxSv = &maxSv
		}
	})

	var err error
	if c.DBPath == "" {
		err = errors.New("db path is required")
	} else if c.SessionID <= 0 {
		err = errors.New("session id is required")
	} else if c.ChannelID == "" {
		err = errors.New("channel id is required")
	} else if c.OutputFile == "" {
		err = errors.New("output file is required")
	} else if _, ok := validImageFormats[ImageFormat(imageFormat)]; !ok {
		err = fmt.Errorf("invalid image format: %s", imageFormat)
	} else if _, ok := colorThemes[ColorTheme(theme)]; !ok {
		err = fmt.Errorf("invalid color theme: %s", theme)
	}

	if err == nil && tz != "" {
		if c.TimeZone, err = time.LoadLocation(tz); err != nil {
			err = fmt.Errorf("invalid timezone %q: %w", tz, err)
		}
	}

	if err != nil {
		flag.Usage()
		return nil, err
	}

	c.Format = ImageFormat(imageFormat)
	c.Theme = ColorTheme(theme)
	c.OutputFile = fmt.Sprintf("%s.%s", c.OutputFile, c.Format)
	return c, nil
}
