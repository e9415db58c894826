// Package testdb provides database fixtures for tests.
//
// SQLite fixtures live in a per-test temporary directory and need no
// external service. PostgreSQL fixtures connect to DATABASE_URL and skip
// the test when it is unset:
//
//	func TestSomething(t *testing.T) {
//		db := testdb.OpenPostgres(t)
//		store := postgres.NewCommandStore(db, nil)
//		...
//	}
//
// Both fixtures apply the embedded migrations and start from an empty
// commands table. The connection is closed when the test finishes.
package testdb
