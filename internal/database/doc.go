// Package database provides SQLite-based storage for crawl result history.
//
// Only extraction results are persisted — domain, logo/favicon URLs,
// status, and the strategy that produced the logo. Fetched page content is
// never stored.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
