package db

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; the ALTER TABLE must be tolerated.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"batches", "records"} {
		var name string
		err := db.Get(&name, `SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_records_batch", "idx_records_id", "idx_records_type", "idx_records_priority"} {
		var name string
		err := db.Get(&name, `SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsSessionColumn(t *testing.T) {
	db := openTestDB(t)

	var cols []struct {
		CID     int     `db:"cid"`
		Name    string  `db:"name"`
		Type    string  `db:"type"`
		NotNull int     `db:"notnull"`
		Default *string `db:"dflt_value"`
		PK      int     `db:"pk"`
	}
	require.NoError(t, db.Select(&cols, `PRAGMA table_info(batches)`))

	var names []string
	for _, c := range cols {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "session_id")
}

func TestMigrate_CheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO batches (id, seed, requested, generator_version, created_at) VALUES ('b1', 1, 1, 'v', 'now')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO records (id, batch_id, position, intent_type, description, timestamp, priority,
		network_slice, location, technical_complexity, parameters, metadata)
		VALUES ('r1', 'b1', 0, 'DEPLOYMENT', 'd', 't', 'URGENTISH', 's', 'l', 5, '{}', '{}')`)
	assert.Error(t, err, "unknown priority must be rejected")

	_, err = db.Exec(`INSERT INTO records (id, batch_id, position, intent_type, description, timestamp, priority,
		network_slice, location, technical_complexity, parameters, metadata)
		VALUES ('r1', 'b1', 0, 'DEPLOYMENT', 'd', 't', 'LOW', 's', 'l', 11, '{}', '{}')`)
	assert.Error(t, err, "complexity above 10 must be rejected")
}

// Seeded runs replay record ids, so ids repeat across batches but not
// within one.
func TestMigrate_RecordIDsScopedToBatch(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO records (id, batch_id, position, intent_type, description, timestamp, priority,
		network_slice, location, technical_complexity, parameters, metadata)
		VALUES ('IBN_1_abc', ?, ?, 'DEPLOYMENT', 'd', 't', 'LOW', 's', 'l', 5, '{}', '{}')`
	for _, b := range []string{"b1", "b2"} {
		_, err := db.Exec(`INSERT INTO batches (id, seed, requested, generator_version, created_at) VALUES (?, 1, 1, 'v', 'now')`, b)
		require.NoError(t, err)
	}

	_, err := db.Exec(insert, "b1", 0)
	require.NoError(t, err)
	_, err = db.Exec(insert, "b2", 0)
	require.NoError(t, err, "the same id may appear in another batch")
	_, err = db.Exec(insert, "b1", 1)
	assert.Error(t, err, "ids stay unique within a batch")
}
