package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSQL_Dollar(t *testing.T) {
	sql, err := UpsertSQL(UpsertConfig{
		Table:        "extractions",
		Columns:      []string{"id", "status", "list"},
		ConflictKeys: []string{"id"},
	}, Dollar)
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "extractions" ("id", "status", "list") VALUES ($1, $2, $3) ON CONFLICT ("id") DO UPDATE SET "status" = excluded."status", "list" = excluded."list"`,
		sql)
}

func TestUpsertSQL_QuestionWithUpdateCols(t *testing.T) {
	sql, err := UpsertSQL(UpsertConfig{
		Table:        "archive.extractions",
		Columns:      []string{"id", "status", "list"},
		ConflictKeys: []string{"id"},
		UpdateCols:   []string{"list"},
	}, Question)
	require.NoError(t, err)
	assert.Equal(t,
		`INSERT INTO "archive"."extractions" ("id", "status", "list") VALUES (?, ?, ?) ON CONFLICT ("id") DO UPDATE SET "list" = excluded."list"`,
		sql)
}

func TestUpsertSQL_OnlyKeysDoesNothing(t *testing.T) {
	sql, err := UpsertSQL(UpsertConfig{
		Table:        "t",
		Columns:      []string{"id"},
		ConflictKeys: []string{"id"},
	}, Question)
	require.NoError(t, err)
	assert.Contains(t, sql, "ON CONFLICT (\"id\") DO NOTHING")
}

func TestUpsertSQL_Invalid(t *testing.T) {
	_, err := UpsertSQL(UpsertConfig{Columns: []string{"id"}, ConflictKeys: []string{"id"}}, Dollar)
	assert.ErrorContains(t, err, "no table specified")

	_, err = UpsertSQL(UpsertConfig{Table: "t", ConflictKeys: []string{"id"}}, Dollar)
	assert.ErrorContains(t, err, "no columns specified")

	_, err = UpsertSQL(UpsertConfig{Table: "t", Columns: []string{"id"}}, Dollar)
	assert.ErrorContains(t, err, "no conflict keys specified")
}

func TestSanitizeTable(t *testing.T) {
	assert.Equal(t, `"extractions"`, sanitizeTable("extractions"))
	assert.Equal(t, `"archive"."extractions"`, sanitizeTable("archive.extractions"))
}

func TestQuoteAndJoin(t *testing.T) {
	assert.Equal(t, `"id", "created_at"`, quoteAndJoin([]string{"id", "created_at"}))
}
