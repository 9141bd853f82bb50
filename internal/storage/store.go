package storage

import (
	"context"
	"time"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

// Store provides an interface for persisting echosounder survey data.
// It handles survey sessions and per-ping sample rows. All write operations
// should be considered atomic.
type Store interface {
	// CreateSession initializes a new survey session and returns its unique
	// identifier. config may be a string, []byte, or any JSON-serializable
	// value describing the instrument setup.
	CreateSession(ctx context.Context, survey, instrument string, config any) (sessionID int64, err error)

	// Session retrieves a survey session by its ID.
	Session(ctx context.Context, id int64) (*Session, error)

	// Sessions returns all survey sessions ordered by start time.
	Sessions(ctx context.Context) ([]*Session, error)

	// StoreGrid writes every ping of the grid as one row each, in a single
	// transaction.
	StoreGrid(ctx context.Context, sessionID int64, g *echogram.Grid) error

	// Channels lists the distinct channel IDs recorded for a session.
	Channels(ctx context.Context, sessionID int64) ([]string, error)

	// ReadChannel returns an iterator over the pings of one channel,
	// ordered by ping time. Options narrow the time window.
	ReadChannel(ctx context.Context, sessionID int64, channelID string, opts ...ReaderOption) (*PingIterator, error)

	// Close releases all database connections. Safe to call multiple times.
	Close() error
}

// Session represents a single survey recording session.
type Session struct {
	ID         int64     `json:"ID"`
	StartTime  time.Time `json:"startTime"`
	Survey     string    `json:"survey"`     // Survey or cruise name
	Instrument string    `json:"instrument"` // Instrument identifier (e.g. "EK60")
	Config     *string   `json:"config,omitempty"`
}

// PingRecord is one stored ping: a timestamp, the vertical-axis metadata and
// the packed sample values.
type PingRecord struct {
	ID              int64
	SessionID       int64
	ChannelID       string
	Frequency       float64
	DataType        echogram.DataType
	PingTime        time.Time
	AxisKind        echogram.AxisKind
	AxisStart       float64 // first vertical axis value in meters
	SampleThickness float64 // meters per sample
	SampleOffset    int
	Samples         []float64
}
