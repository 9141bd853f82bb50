package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

// ReaderOption narrows what ReadChannel returns.
type ReaderOption func(*PingIterator)

// WithStartTime skips pings before startTime.
func WithStartTime(startTime time.Time) ReaderOption {
	return func(i *PingIterator) {
		i.startTime = &startTime
	}
}

// WithEndTime skips pings after endTime.
func WithEndTime(endTime time.Time) ReaderOption {
	return func(i *PingIterator) {
		i.endTime = &endTime
	}
}

// WithTimeRange limits iteration to pings within [startTime, endTime].
func WithTimeRange(startTime, endTime time.Time) ReaderOption {
	return func(i *PingIterator) {
		i.startTime = &startTime
		i.endTime = &endTime
	}
}

// PingIterator iterates over the stored pings of one channel in ping-time
// order.
type PingIterator struct {
	db        *sql.DB
	sessionID int64
	channelID string
	startTime *time.Time
	endTime   *time.Time

	rows    *sql.Rows
	current *PingRecord
	err     error
}

func (pi *PingIterator) init(ctx context.Context) error {
	start := time.Unix(0, 0).UTC()
	end := time.Now().UTC().Add(24 * time.Hour)
	if pi.startTime != nil {
		start = pi.startTime.UTC()
	}
	if pi.endTime != nil {
		end = pi.endTime.UTC()
	}

	stmt, err := pi.db.PrepareContext(ctx, selectPingsSQL)
	if err != nil {
		return fmt.Errorf("preparing query: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, pi.sessionID, pi.channelID, start, end)
	if err != nil {
		return fmt.Errorf("querying pings: %w", err)
	}

	pi.rows = rows
	return nil
}

// Next advances to the next ping. It returns false at the end of the result
// set or on error; check Error afterwards.
func (pi *PingIterator) Next(ctx context.Context) bool {
	if pi.err != nil || !pi.rows.Next() {
		return false
	}
	if err := ctx.Err(); err != nil {
		pi.err = err
		return false
	}

	var row pingData
	if err := pi.rows.Scan(&row.ID, &row.SessionID, &row.ChannelID, &row.Frequency, &row.DataType,
		&row.PingTime, &row.AxisKind, &row.AxisStart, &row.SampleThickness, &row.SampleOffset, &row.Samples); err != nil {
		pi.err = fmt.Errorf("scanning ping: %w", err)
		return false
	}

	samples, err := unpackSamples(row.Samples)
	if err != nil {
		pi.err = fmt.Errorf("decoding ping %d: %w", row.ID, err)
		return false
	}

	pi.current = &PingRecord{
		ID:              row.ID,
		SessionID:       row.SessionID,
		ChannelID:       row.ChannelID,
		Frequency:       row.Frequency,
		DataType:        echogram.DataType(row.DataType),
		PingTime:        row.PingTime,
		AxisKind:        echogram.AxisKind(row.AxisKind),
		AxisStart:       row.AxisStart,
		SampleThickness: row.SampleThickness,
		SampleOffset:    row.SampleOffset,
		Samples:         samples,
	}
	return true
}

// Current returns the ping most recently read by Next.
func (pi *PingIterator) Current() *PingRecord {
	return pi.current
}

// Error returns the first error hit during iteration, if any.
func (pi *PingIterator) Error() error {
	if pi.err != nil {
		return pi.err
	}
	return pi.rows.Err()
}

// Close releases the database resources.
func (pi *PingIterator) Close() error {
	return pi.rows.Close()
}
