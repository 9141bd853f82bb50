package storage

const initSchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    start_time  DATETIME NOT NULL,
    survey      TEXT     NOT NULL,
    instrument  TEXT     NOT NULL,
    config      TEXT
);

CREATE TABLE IF NOT EXISTS pings (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id       INTEGER  NOT NULL REFERENCES sessions (id),
    channel_id       TEXT     NOT NULL,
    frequency        REAL     NOT NULL,
    data_type        TEXT     NOT NULL,
    ping_time        DATETIME NOT NULL,
    axis_kind        TEXT     NOT NULL,
    axis_start       REAL     NOT NULL,
    sample_thickness REAL     NOT NULL,
    sample_offset    INTEGER  NOT NULL,
    n_samples        INTEGER  NOT NULL,
    samples          BLOB     NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pings_channel_time
    ON pings (session_id, channel_id, ping_time);
`

const (
	insertSessionSQL = `
INSERT INTO sessions (
                      start_time,
                      survey,
                      instrument,
                      config)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?)`

	selectSessionSQL = `
SELECT
    id,
    start_time,
    survey,
    instrument,
    config
FROM sessions
WHERE
    id = ?`

	selectSessionsSQL = `
SELECT
    id,
    start_time,
    survey,
    instrument,
    config
FROM sessions
ORDER BY start_time`

	insertPingSQL = `
INSERT INTO pings (session_id,
                   channel_id,
                   frequency,
                   data_type,
                   ping_time,
                   axis_kind,
                   axis_start,
                   sample_thickness,
                   sample_offset,
                   n_samples,
                   samples)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectChannelsSQL = `
SELECT DISTINCT channel_id
FROM pings
WHERE session_id = ?
ORDER BY channel_id`

	selectPingsSQL = `
SELECT
    id,
    session_id,
    channel_id,
    frequency,
    data_type,
    ping_time,
    axis_kind,
    axis_start,
    sample_thickness,
    sample_offset,
    samples
FROM pings
WHERE
    session_id = ?
    AND channel_id = ?
    AND ping_time BETWEEN ? AND ?
ORDER BY ping_time`
)
