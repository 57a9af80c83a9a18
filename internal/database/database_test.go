package database

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/stagebook/internal/config"
)

func TestBuildDSN(t *testing.T) {
	mysql := BuildDSN(config.Config{DBDriver: "mysql", DBUser: "u", DBPass: "p", DBHost: "db", DBPort: "3306", DBName: "fyyur"})
	assert.True(t, strings.HasPrefix(mysql, "u:p@tcp(db:3306)/fyyur?"))
	assert.Contains(t, mysql, "parseTime=true")
	assert.Contains(t, mysql, "clientFoundRows=true")

	pg := BuildDSN(config.Config{DBDriver: "postgres", DBUser: "u", DBHost: "db", DBPort: "5432", DBName: "trivia"})
	assert.Equal(t, "postgres://u@db:5432/trivia?sslmode=disable", pg)

	assert.Equal(t, SQLiteDSN("x.db"), BuildDSN(config.Config{DBDriver: "sqlite", DBName: "x.db"}))
}

func TestMigrateAndSeedAreIdempotent(t *testing.T) {
	db, err := OpenDSN("sqlite", SQLiteDSN(":memory:"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	n, err := Seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCategories), n)

	n, err = Seed(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)

	var types []string
	require.NoError(t, db.SelectContext(ctx, &types, `SELECT type FROM categories ORDER BY id`))
	assert.Equal(t, DefaultCategories, types)
}

func TestForeignKeysEnforced(t *testing.T) {
	db, err := OpenDSN("sqlite", SQLiteDSN(":memory:"))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))

	_, err = db.ExecContext(ctx, `INSERT INTO questions (question, answer, category_id, difficulty) VALUES ('q', 'a', 42, 1)`)
	assert.Error(t, err)
}

func TestSchemasCoverEveryDialect(t *testing.T) {
	assert.NotContains(t, schemas, "oracle")
	assert.Len(t, schemas["sqlite"], len(schemas["mysql"]))
	assert.Len(t, schemas["postgres"], len(schemas["mysql"]))
}
