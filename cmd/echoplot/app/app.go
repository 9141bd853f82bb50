package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/acoustic-survey/echogrid/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer store.Close()

	return renderChannel(ctx, store, config, logger)
}

func renderChannel(ctx context.Context, store *storage.SqliteStore, config *Config, logger *slog.Logger) error {
	iter, err := store.ReadChannel(ctx, config.SessionID, config.ChannelID)
	if err != nil {
		return fmt.Errorf("reading channel %s: %w", config.ChannelID, err)
	}
	defer iter.Close()

	logger.Info("reading pings, hold on tight, it may take a while",
		slog.Int64("session", config.SessionID),
		slog.String("channel", config.ChannelID))

	grid, err := storage.BuildGrid(ctx, iter)
	if err != nil {
		return err
	}

	// The histogram wants dB values; convert linear channels up front.
	grid.ToLog()

	hist := NewSvHistogram()
	for _, row := range grid.Samples() {
		for _, sv := range row {
			hist.Update(sv)
		}
	}
	bounds := hist.PercentileBounds()
	if config.MinSv != nil {
		bounds.Min = *config.MinSv
	}
	if config.MaxSv != nil {
		bounds.Max = *config.MaxSv
	}

	kind, axis, err := grid.Axis()
	if err != nil {
		return err
	}

	logger.Info("finished reading pings",
		slog.Group("stats",
			slog.String("pings", humanize.Comma(int64(grid.NPings()))),
			slog.Int("samples", grid.NSamples()),
			slog.String("axis", string(kind)),
			slog.String("extent", fmt.Sprintf("%.1fm - %.1fm", axis[0], axis[len(axis)-1])),
			slog.String("minSv", fmt.Sprintf("%.1fdB", bounds.Min)),
			slog.String("maxSv", fmt.Sprintf("%.1fdB", bounds.Max)),
		))

	renderer, err := NewEchogramRenderer(RenderConfig{
		Location:    config.TimeZone,
		ColorTheme:  config.Theme,
		FontPath:    config.FontPath,
		Annotations: !config.NoAnnotations,
	})
	if err != nil {
		return fmt.Errorf("creating echogram renderer: %w", err)
	}

	logger.Info("rendering echogram",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Theme)),
			slog.Int("width", grid.NPings()),
			slog.Int("height", grid.NSamples()),
		))

	started := time.Now()
	img, err := renderer.Render(grid, bounds)
	if err != nil {
		return fmt.Errorf("rendering echogram: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	if err != nil {
		return err
	}

	logger.Info("done", slog.Duration("elapsed", time.Since(started)))
	return nil
}
