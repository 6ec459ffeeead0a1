package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pwaudit/internal/model"
)

// DBFileName is the name of the history database file inside the database
// directory.
const DBFileName = "pwaudit.db"

// timestampLayout is how run timestamps are stored. The fixed width keeps
// lexical and chronological order identical.
const timestampLayout = "2006-01-02 15:04:05.000000000"

var (
	// ErrDatabaseNotFound is returned by Open when the database does not
	// exist and CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("history database not found")

	// ErrRunNotFound is returned when no run has the requested id.
	ErrRunNotFound = errors.New("run not found")

	// ErrMissingRunID is returned when saving a report without a run id.
	ErrMissingRunID = errors.New("report has no run id")
)

// HistoryDB provides SQLite-based storage for analysis runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// Otherwise a missing database yields ErrDatabaseNotFound.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	if err := os.Chmod(dbPath, 0o600); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to restrict database permissions: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per completed analysis run
	CREATE TABLE IF NOT EXISTS runs (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		total_entries INTEGER NOT NULL,
		unique_passwords INTEGER NOT NULL,
		compromised_count INTEGER NOT NULL,
		summary_json TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata contains summary information about a stored run.
// It is used for listing history without loading full reports.
type RunMetadata struct {
	// ID is the run identifier.
	ID string

	// Source is the analyzed dump.
	Source string

	// Timestamp is when the report was generated.
	Timestamp time.Time

	// TotalEntries is the number of valid records.
	TotalEntries int

	// UniquePasswords is the number of distinct passwords.
	UniquePasswords int

	// CompromisedCount is the number of dump records of high value targets.
	CompromisedCount int

	// Summary holds secondary counts keyed by name, e.g. "compromised_users".
	Summary map[string]int
}

// summarize extracts the secondary counts stored alongside a run.
func summarize(report *model.Report) map[string]int {
	return map[string]int{
		"compromised_users": len(report.CompromisedByUser),
		"username_reuse":    report.UsernameReuse.Count,
		"trailing_digit":    report.TrailingDigits.Single.Count,
		"trailing_year":     sumCounts(report.Years),
		"distinct_lengths":  len(report.Lengths),
	}
}

func sumCounts(shares []model.Share[string]) int {
	n := 0
	for _, s := range shares {
		n += s.Count
	}
	return n
}

// SaveRun stores a report. The report's RunID identifies the run and must
// be unique.
func (hdb *HistoryDB) SaveRun(ctx context.Context, report *model.Report) error {
	if report.RunID == "" {
		return ErrMissingRunID
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	summaryJSON, err := json.Marshal(summarize(report))
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	query := `
	INSERT INTO runs (id, source, timestamp, total_entries, unique_passwords, compromised_count, summary_json, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		report.RunID,
		report.Source,
		report.GeneratedAt.UTC().Format(timestampLayout),
		report.TotalEntries,
		report.UniquePasswords,
		len(report.Compromised),
		string(summaryJSON),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// ListSources returns every dump with stored runs, sorted.
func (hdb *HistoryDB) ListSources(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT source FROM runs
	ORDER BY source
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	sources := make([]string, 0)
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}

	return sources, rows.Err()
}

// GetRunHistory returns the metadata of every run of source, newest first.
func (hdb *HistoryDB) GetRunHistory(ctx context.Context, source string) ([]RunMetadata, error) {
	query := `
	SELECT id, source, timestamp, total_entries, unique_passwords, compromised_count, summary_json
	FROM runs
	WHERE source = ?
	ORDER BY timestamp DESC, seq DESC
	`

	rows, err := hdb.db.QueryContext(ctx, query, source)
	if err != nil {
		return nil, fmt.Errorf("failed to get run history: %w", err)
	}
	defer rows.Close()

	results := make([]RunMetadata, 0)
	for rows.Next() {
		var meta RunMetadata
		var timestamp string
		var summaryJSON sql.NullString

		if err := rows.Scan(
			&meta.ID,
			&meta.Source,
			&timestamp,
			&meta.TotalEntries,
			&meta.UniquePasswords,
			&meta.CompromisedCount,
			&summaryJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)

		meta.Summary = make(map[string]int)
		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &meta.Summary); err != nil {
				meta.Summary = make(map[string]int)
			}
		}

		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRunByID returns the report of the run with the given id, or
// ErrRunNotFound.
func (hdb *HistoryDB) GetRunByID(ctx context.Context, id string) (*model.Report, error) {
	query := `
	SELECT report_json FROM runs
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return decodeReport(reportJSON)
}

// GetLatestRuns returns up to n reports of source, newest first.
func (hdb *HistoryDB) GetLatestRuns(ctx context.Context, source string, n int) ([]*model.Report, error) {
	query := `
	SELECT report_json FROM runs
	WHERE source = ?
	ORDER BY timestamp DESC, seq DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, source, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest runs: %w", err)
	}
	defer rows.Close()

	reports := make([]*model.Report, 0, max(n, 0))
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		report, err := decodeReport(reportJSON)
		if err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

func decodeReport(reportJSON string) (*model.Report, error) {
	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
