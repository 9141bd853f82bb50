package storage

import (
	"database/sql"
	"time"
)

type sessionData struct {
	ID         int64
	StartTime  time.Time
	Survey     string
	Instrument string
	Config     sql.NullString
}

func (d sessionData) toSession() *Session {
	var config *string
	if d.Config.Valid {
		config = &d.Config.String
	}
	return &Session{
		ID:         d.ID,
		StartTime:  d.StartTime,
		Survey:     d.Survey,
		Instrument: d.Instrument,
		Config:     config,
	}
}

type pingData struct {
	ID              int64
	SessionID       int64
	ChannelID       string
	Frequency       float64
	DataType        string
	PingTime        time.Time
	AxisKind        string
	AxisStart       float64
	SampleThickness float64
	SampleOffset    int
	Samples         []byte
}
