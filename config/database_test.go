package config

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCreateTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range schemaStatements {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, createTables(context.Background(), db))
	require.NoError(t, mock.ExpectationsWereMet())
}

// A purchased artwork must stay deletable and cleanup must not abort when a
// transaction still references an old artwork, so the ledger table must not
// hold a foreign key into artworks.
func TestSchema_TransactionsOutliveArtworks(t *testing.T) {
	for _, stmt := range schemaStatements {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS transactions") {
			require.NotContains(t, stmt, "REFERENCES artworks")
			return
		}
	}
	t.Fatal("таблица transactions не найдена в схеме")
}
