package sqltest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Register SQLite driver under name "sqlite".
	_ "modernc.org/sqlite"
)

// NewSQLiteDB creates an isolated fresh SQLite database in a temporary
// directory for each test. The database file is named deterministically.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(
		t.TempDir(), "btsledgertest_"+deterministicTestID(t)+".sqlite",
	)
	dsn := "file:" + dbPath + "?mode=rwc"

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err, "failed to open SQLite database")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		require.NoError(t, err, "failed to ping SQLite database")
	}

	// The temporary directory is removed by the testing package once the
	// connection is closed.
	t.Cleanup(func() {
		err := db.Close()
		assert.NoError(t, err, "failed to close SQLite database")
	})

	return db
}
