package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"artauction/models"
	"artauction/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (repository.PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewPostgresRepository(db), mock
}

func TestPostgresRepository_CreateUser(t *testing.T) {
	t.Run("New user gets default balance", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			"INSERT INTO users (username, password, balance) VALUES ($1, $2, 1000) RETURNING id",
		)).
			WithArgs("newuser", "hashed").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		id, err := repo.CreateUser(context.Background(), "newuser", "hashed")
		require.NoError(t, err)
		require.Equal(t, 5, id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate username", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(regexp.QuoteMeta(
			"INSERT INTO users (username, password, balance) VALUES ($1, $2, 1000) RETURNING id",
		)).
			WithArgs("taken", "hashed").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.CreateUser(context.Background(), "taken", "hashed")
		require.ErrorIs(t, err, repository.ErrUserExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_GetUserByUsername_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, username, password, balance FROM users WHERE username=$1",
	)).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_PurchaseArtwork(t *testing.T) {
	lockArtwork := regexp.QuoteMeta("SELECT owner_id, price FROM artworks WHERE id=$1 FOR UPDATE")
	lockBalance := regexp.QuoteMeta("SELECT balance FROM users WHERE id=$1 FOR UPDATE")

	t.Run("Successful purchase commits all mutations", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockArtwork).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "price"}).AddRow(2, 300))
		mock.ExpectQuery(lockBalance).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(1000))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance - $1 WHERE id=$2")).
			WithArgs(300, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET balance = balance + $1 WHERE id=$2")).
			WithArgs(300, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE artworks SET owner_id=$1 WHERE id=$2")).
			WithArgs(3, 7).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(
			"INSERT INTO transactions (buyer_id, seller_id, artwork_id, amount, created_at) "+
				"VALUES ($1, $2, $3, $4, $5)",
		)).
			WithArgs(3, 2, 7, 300, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.PurchaseArtwork(context.Background(), 3, 7)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient funds rolls back without mutations", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockArtwork).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "price"}).AddRow(2, 300))
		mock.ExpectQuery(lockBalance).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100))
		mock.ExpectRollback()

		err := repo.PurchaseArtwork(context.Background(), 3, 7)
		require.ErrorIs(t, err, repository.ErrInsufficientFunds)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Self purchase refused before touching balances", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockArtwork).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "price"}).AddRow(3, 300))
		mock.ExpectRollback()

		err := repo.PurchaseArtwork(context.Background(), 3, 7)
		require.ErrorIs(t, err, repository.ErrSelfPurchase)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing artwork", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(lockArtwork).
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.PurchaseArtwork(context.Background(), 3, 99)
		require.ErrorIs(t, err, repository.ErrArtworkNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_CreateArtwork(t *testing.T) {
	insertArtwork := regexp.QuoteMeta(
		"INSERT INTO artworks (title, data, price, owner_id, is_private, signature) " +
			"VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
	)
	artwork := models.Artwork{
		Title:     "Композиция",
		Data:      "[]",
		Price:     200,
		OwnerID:   3,
		Signature: "подпись",
	}

	t.Run("With settings row", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(insertArtwork).
			WithArgs("Композиция", "[]", 200, 3, false, "подпись").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectExec(regexp.QuoteMeta(
			"INSERT INTO artwork_settings (artwork_id, settings_data) VALUES ($1, $2)",
		)).
			WithArgs(11, "описание").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		id, err := repo.CreateArtwork(context.Background(), artwork, "описание")
		require.NoError(t, err)
		require.Equal(t, 11, id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Without settings row", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectBegin()
		mock.ExpectQuery(insertArtwork).
			WithArgs("Композиция", "[]", 200, 3, false, "подпись").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectCommit()

		id, err := repo.CreateArtwork(context.Background(), artwork, "")
		require.NoError(t, err)
		require.Equal(t, 12, id)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepository_UpdateArtwork_NotOwned(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE artworks SET title=$1, data=$2, price=$3, is_private=$4, signature=$5 "+
			"WHERE id=$6 AND owner_id=$7",
	)).
		WithArgs("t", "d", 1, false, "", 7, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateArtwork(context.Background(), models.Artwork{
		ID: 7, Title: "t", Data: "d", Price: 1, OwnerID: 3,
	})
	require.ErrorIs(t, err, repository.ErrArtworkNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_SaveArtworkSettings_ReplacesRow(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM artwork_settings WHERE artwork_id=$1")).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO artwork_settings (artwork_id, settings_data) VALUES ($1, $2)",
	)).
		WithArgs(7, `{"colors":"dark","animation":true,"public":false}`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.SaveArtworkSettings(
		context.Background(), 7,
		`{"colors":"dark","animation":true,"public":false}`,
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetArtworkSettings_Missing(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT settings_data FROM artwork_settings WHERE artwork_id=$1",
	)).
		WithArgs(7).
		WillReturnError(sql.ErrNoRows)

	data, err := repo.GetArtworkSettings(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, data)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListPublicArtworks(t *testing.T) {
	repo, mock := newMockRepository(t)

	created := time.Now()
	mock.ExpectQuery("SELECT .+ FROM artworks a").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "data", "price", "owner_id",
			"is_private", "signature", "created_at", "username",
		}).
			AddRow(1, "Первая", "[]", 100, 2, false, "", created, "seller").
			AddRow(2, "Вторая", "[]", 150, 2, false, "imported", created, "seller"))

	artworks, err := repo.ListPublicArtworks(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, artworks, 2)
	require.Equal(t, "Первая", artworks[0].Title)
	require.Equal(t, "seller", artworks[0].OwnerName)
	require.Equal(t, "imported", artworks[1].Signature)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_EnsureAdmin_Idempotent(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("INSERT INTO users .+ ON CONFLICT \\(username\\) DO NOTHING").
		WithArgs("hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureAdmin(context.Background(), "hash"))
	require.NoError(t, mock.ExpectationsWereMet())
}
