package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/acoustic-survey/echogrid/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	store := storage.NewSqliteStore(config.Storage.DatabaseFile)
	defer store.Close()

	sessionID, err := store.CreateSession(ctx, config.Survey.Name, config.Survey.Instrument, config)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	logger.Info("created session",
		slog.Int64("session", sessionID),
		slog.String("survey", config.Survey.Name),
		slog.String("instrument", config.Survey.Instrument))

	start := time.Now().UTC()
	for _, ch := range config.Channels {
		if err = ctx.Err(); err != nil {
			return err
		}

		logger.Info("synthesizing channel",
			slog.String("channel", ch.ChannelID),
			slog.String("frequency", humanize.SI(ch.Frequency, "Hz")),
			slog.String("pings", humanize.Comma(int64(ch.Pings))),
			slog.Int("samples", ch.Samples))

		grid, err := SynthesizeChannel(ch, start)
		if err != nil {
			return err
		}

		if err = store.StoreGrid(ctx, sessionID, grid); err != nil {
			return fmt.Errorf("storing channel %s: %w", ch.ChannelID, err)
		}

		kind, axis, err := grid.Axis()
		if err != nil {
			return err
		}
		logger.Info("stored channel",
			slog.String("channel", ch.ChannelID),
			slog.String("axis", string(kind)),
			slog.String("extent", fmt.Sprintf("%.1fm - %.1fm", axis[0], axis[len(axis)-1])))
	}

	logger.Info("done", slog.Int("channels", len(config.Channels)))
	return nil
}
