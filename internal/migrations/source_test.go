package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSSourceLoad(t *testing.T) {
	t.Run("pairs up and down scripts and sorts by version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"sql/0002_add_index.up.sql":      {Data: []byte("CREATE INDEX i ON t (c);")},
			"sql/0002_add_index.down.sql":    {Data: []byte("DROP INDEX i;")},
			"sql/0001_create_table.up.sql":   {Data: []byte("CREATE TABLE t (c INT);")},
			"sql/0010_widen_column.up.sql":   {Data: []byte("ALTER TABLE t ALTER c TYPE BIGINT;")},
			"sql/0010_widen_column.down.sql": {Data: []byte("ALTER TABLE t ALTER c TYPE INT;")},
		}

		all, err := NewFSSource(fsys, "sql").Load()
		require.NoError(t, err)
		require.Len(t, all, 3)

		assert.Equal(t, "0001", all[0].Version)
		assert.Equal(t, "create_table", all[0].Name)
		assert.Equal(t, "CREATE TABLE t (c INT);", all[0].UpSQL)
		assert.Empty(t, all[0].DownSQL)

		assert.Equal(t, "0002", all[1].Version)
		assert.Equal(t, "DROP INDEX i;", all[1].DownSQL)

		// 0010 sorts numerically after 0002, not lexically between.
		assert.Equal(t, "0010", all[2].Version)
	})

	t.Run("down without up is rejected", func(t *testing.T) {
		fsys := fstest.MapFS{
			"sql/0001_orphan.down.sql": {Data: []byte("DROP TABLE t;")},
		}
		_, err := NewFSSource(fsys, "sql").Load()
		assert.ErrorContains(t, err, "no up script")
	})

	t.Run("unrecognized filename is rejected", func(t *testing.T) {
		fsys := fstest.MapFS{
			"sql/readme.txt": {Data: []byte("not sql")},
		}
		_, err := NewFSSource(fsys, "sql").Load()
		assert.ErrorContains(t, err, "unrecognized migration filename")
	})

	t.Run("duplicate up for a version is rejected", func(t *testing.T) {
		fsys := fstest.MapFS{
			"sql/0001_a.up.sql": {Data: []byte("SELECT 1;")},
			"sql/0001_b.up.sql": {Data: []byte("SELECT 2;")},
		}
		_, err := NewFSSource(fsys, "sql").Load()
		assert.ErrorContains(t, err, "duplicate up migration")
	})
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  string
		name     string
		up       bool
		ok       bool
	}{
		{"0001_create_users.up.sql", "0001", "create_users", true, true},
		{"0001_create_users.down.sql", "0001", "create_users", false, true},
		{"20260831120000_add_email.up.sql", "20260831120000", "add_email", true, true},
		{"create_users.up.sql", "", "", false, false},
		{"0001.up.sql", "", "", false, false},
		{"0001_.up.sql", "", "", false, false},
		{"0001_create_users.sql", "", "", false, false},
	}

	for _, tt := range tests {
		version, name, up, ok := parseFilename(tt.filename)
		assert.Equal(t, tt.ok, ok, tt.filename)
		if tt.ok {
			assert.Equal(t, tt.version, version, tt.filename)
			assert.Equal(t, tt.name, name, tt.filename)
			assert.Equal(t, tt.up, up, tt.filename)
		}
	}
}

func TestDefaultSource(t *testing.T) {
	all, err := DefaultSource().Load()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	// The shipped schema ends with the skin cancer dataset table.
	last := all[len(all)-1]
	assert.Equal(t, "create_skin_cancer_data", last.Name)
	for _, mig := range all {
		assert.NotEmpty(t, mig.UpSQL, mig.Version)
		assert.NotEmpty(t, mig.DownSQL, mig.Version)
	}
}
