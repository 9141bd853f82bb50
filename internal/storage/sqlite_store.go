package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/acoustic-survey/echogrid/internal/echogram"
)

// SqliteStore persists survey data in a sqlite database. Reads and writes go
// through separate lazily-opened connections so a long render does not block
// an ongoing recording.
type SqliteStore struct {
	dbPath string

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

// NewSqliteStore creates a store backed by the sqlite database at dbPath.
// The schema is initialized on first write.
func NewSqliteStore(dbPath string) *SqliteStore {
	return &SqliteStore{dbPath: dbPath}
}

func (s *SqliteStore) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}

		if _, err = db.Exec(initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *SqliteStore) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

// CreateSession creates a new survey session and returns its ID.
func (s *SqliteStore) CreateSession(ctx context.Context, survey, instrument string, config any) (sessionID int64, err error) {
	var configData sql.NullString

	switch v := config.(type) {
	case nil:
	case string:
		configData.Valid = true
		configData.String = v

	case []byte:
		configData.Valid = true
		configData.String = string(v)

	default:
		var p []byte
		if p, err = json.Marshal(config); err != nil {
			err = fmt.Errorf("marshaling config: %w", err)
			return
		}

		configData.Valid = true
		configData.String = string(p)
	}

	db, err := s.getWriteDB()
	if err != nil {
		err = fmt.Errorf("getting write connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, insertSessionSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	result, err := stmt.ExecContext(ctx, survey, instrument, configData)
	if err != nil {
		err = fmt.Errorf("inserting session: %w", err)
		return
	}

	return result.LastInsertId()
}

// Session returns a survey session by its ID.
func (s *SqliteStore) Session(ctx context.Context, id int64) (session *Session, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	stmt, err := db.PrepareContext(ctx, selectSessionSQL)
	if err != nil {
		err = fmt.Errorf("preparing statement: %w", err)
		return
	}
	defer closeWithError(stmt, &err)

	var row sessionData
	if err = stmt.QueryRowContext(ctx, id).Scan(&row.ID, &row.StartTime, &row.Survey, &row.Instrument, &row.Config); err != nil {
		err = fmt.Errorf("scanning session: %w", err)
		return
	}
	return row.toSession(), nil
}

// Sessions returns all survey sessions ordered by start time.
func (s *SqliteStore) Sessions(ctx context.Context) (sessions []*Session, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectSessionsSQL)
	if err != nil {
		err = fmt.Errorf("querying sessions: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var row sessionData
		if err = rows.Scan(&row.ID, &row.StartTime, &row.Survey, &row.Instrument, &row.Config); err != nil {
			err = fmt.Errorf("scanning session: %w", err)
			return
		}
		sessions = append(sessions, row.toSession())
	}
	err = rows.Err()
	return
}

// StoreGrid writes every ping of the grid as one row in a single
// transaction. The grid must carry a vertical axis.
func (s *SqliteStore) StoreGrid(ctx context.Context, sessionID int64, g *echogram.Grid) (err error) {
	axisKind, axis, err := g.Axis()
	if err != nil {
		return err
	}

	// Reading the channel back needs the axis spacing; single-sample grids
	// never derive one, so the caller must set it.
	if g.SampleThickness <= 0 {
		return fmt.Errorf("grid has non-positive sample thickness %f", g.SampleThickness)
	}

	axisStart := 0.0
	if len(axis) > 0 {
		axisStart = axis[0]
	}

	channelID := ""
	if len(g.ChannelID) > 0 {
		channelID = g.ChannelID[0]
	}

	db, err := s.getWriteDB()
	if err != nil {
		return fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	stmt, err := tx.PrepareContext(ctx, insertPingSQL)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer closeWithError(stmt, &err)

	times := g.PingTime()
	for i, row := range g.Samples() {
		_, err = stmt.ExecContext(ctx,
			sessionID,
			channelID,
			g.Frequency,
			string(g.DataType()),
			times[i].UTC(),
			string(axisKind),
			axisStart,
			g.SampleThickness,
			g.SampleOffset,
			len(row),
			packSamples(row),
		)
		if err != nil {
			return fmt.Errorf("inserting ping %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Channels lists the distinct channel IDs recorded for a session.
func (s *SqliteStore) Channels(ctx context.Context, sessionID int64) (channels []string, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectChannelsSQL, sessionID)
	if err != nil {
		err = fmt.Errorf("querying channels: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var ch string
		if err = rows.Scan(&ch); err != nil {
			err = fmt.Errorf("scanning channel: %w", err)
			return
		}
		channels = append(channels, ch)
	}
	err = rows.Err()
	return
}

// ReadChannel returns an iterator over the pings of one channel, ordered by
// ping time.
func (s *SqliteStore) ReadChannel(ctx context.Context, sessionID int64, channelID string, opts ...ReaderOption) (*PingIterator, error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	iter := &PingIterator{
		db:        db,
		sessionID: sessionID,
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(iter)
	}

	return iter, iter.init(ctx)
}

// Close closes both database connections. Safe to call multiple times.
func (s *SqliteStore) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		s.closeErr = errors.Join(writeErr, readErr)
	})

	return s.closeErr
}
