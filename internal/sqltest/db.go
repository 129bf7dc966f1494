// Package sqltest provides isolated SQL databases for tests that must run
// against every supported SQL backend.
package sqltest

import (
	"database/sql"
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/require"
)

// DBFactory is a function type that creates a new database connection for
// testing purposes. It takes a testing.TB interface to allow for test failure
// when cannot create the database connection, add cleanup logic and create a
// unique and isolated database for each test case.
type DBFactory func(t testing.TB) *sql.DB

// Backend is a SQL backend tests can be run against.
type Backend struct {
	// Dialect is the dialect name understood by the code under test,
	// "sqlite" or "postgres".
	Dialect string

	// Factory creates a fresh database for a test.
	Factory DBFactory
}

// DBTestFunc is a function type that defines the signature for database test
// functions that will be run against different database implementations.
type DBTestFunc func(t *testing.T, backend Backend)

// backends lists the available backends.  SQLite is always present;
// Postgres is added by integration test builds.
var backends = []Backend{{Dialect: "sqlite", Factory: NewSQLiteDB}}

// RunDatabaseTest runs the same test function against every available
// backend. Each backend runs as a parallel subtest.
func RunDatabaseTest(t *testing.T, testFunc DBTestFunc) {
	t.Helper()

	for _, backend := range backends {
		t.Run(backend.Dialect, func(t *testing.T) {
			t.Parallel()
			testFunc(t, backend)
		})
	}
}

// deterministicTestID generates a deterministic identifier based on the test
// name. This ensures that Golang test caching works properly by avoiding
// random generations for the database name. We need to use this hash to avoid
// long database names that can be cropped by some database systems.
func deterministicTestID(t testing.TB) string {
	t.Helper()
	h := fnv.New32a()
	_, err := h.Write([]byte(t.Name()))

	// This should never fail, but we handle it just in case.
	require.NoError(t, err)

	hashed := fmt.Sprintf("%08x", h.Sum32())
	t.Logf("db name hash: %s", hashed)
	return hashed
}
