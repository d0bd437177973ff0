package migrate

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/tursodatabase/go-libsql"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("libsql", "file:"+filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestMigrator_UpAndDown(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	m := New(db, nil)

	all, err := m.Load()
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for i, mig := range all {
		assert.Equal(t, i+1, mig.Version)
		assert.NotEmpty(t, mig.DownSQL, "migration %d has no down file", mig.Version)
	}

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(all), applied)

	version, dirty, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(all), version)
	assert.False(t, dirty)

	for _, table := range []string{"breed", "area", "herds", "production"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	var breeds int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM breed`).Scan(&breeds))
	assert.Equal(t, 5, breeds)

	applied, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, applied, "second run is a no-op")

	require.NoError(t, m.To(ctx, 1))
	version, _, err = m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
	assert.False(t, tableExists(t, db, "production"))
	assert.True(t, tableExists(t, db, "breed"))

	require.NoError(t, m.To(ctx, 3))
	assert.True(t, tableExists(t, db, "production"))
}

func TestMigrator_MissingDown(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"001_one.up.sql": {Data: []byte("CREATE TABLE one (id INTEGER)")},
	}
	m := NewWithFS(testDB(t), fsys, nil)

	_, err := m.Up(ctx)
	require.NoError(t, err)

	err = m.To(ctx, 0)
	assert.ErrorContains(t, err, "no down migration for version 1")
}

func TestMigrator_DirtyState(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"001_bad.up.sql": {Data: []byte("CREATE TABLE ok (id INTEGER); NOT VALID SQL")},
	}
	m := NewWithFS(testDB(t), fsys, nil)

	_, err := m.Up(ctx)
	require.Error(t, err)

	_, dirty, err := m.Version(ctx)
	require.NoError(t, err)
	assert.True(t, dirty)

	_, err = m.Up(ctx)
	assert.ErrorContains(t, err, "dirty state")
}

func TestSplitSQL(t *testing.T) {
	got := SplitSQL("CREATE TABLE a (id INT);\n\n  ;DROP TABLE b;  ")
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "DROP TABLE b"}, got)
}
