// Package database provides SQLite-based run history for pwaudit.
//
// Every completed analysis can be stored in HistoryDB together with its full
// report, so later runs against the same dump can be compared. The store is
// a single file (pwaudit.db) opened through modernc.org/sqlite, which needs
// no CGO, with WAL journaling.
//
// Stored reports contain plaintext passwords: the database directory is
// created 0700 and the database file 0600.
package database
