package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"artauction/models"
)

var (
	ErrUserNotFound      = errors.New("пользователь не найден")
	ErrUserExists        = errors.New("пользователь уже существует")
	ErrArtworkNotFound   = errors.New("произведение не найдено")
	ErrSelfPurchase      = errors.New("нельзя купить собственное произведение")
	ErrInsufficientFunds = errors.New("недостаточно средств")
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) PostgresRepository {
	return PostgresRepository{db: db}
}

func (r PostgresRepository) GetUserByUsername(
	ctx context.Context,
	username string,
) (models.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		"SELECT id, username, password, balance FROM users WHERE username=$1",
		username,
	)
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r PostgresRepository) GetUserByID(
	ctx context.Context,
	id int,
) (models.User, error) {
	row := r.db.QueryRowContext(
		ctx,
		"SELECT id, username, password, balance FROM users WHERE id=$1",
		id,
	)
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r PostgresRepository) CreateUser(
	ctx context.Context,
	username, password string,
) (int, error) {
	var id int
	err := r.db.QueryRowContext(
		ctx,
		"INSERT INTO users (username, password, balance) VALUES ($1, $2, 1000) RETURNING id",
		username, password,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return id, nil
}

// UpdateUserPassword rewrites a stored credential, used by the lazy
// legacy-hash upgrade on login.
func (r PostgresRepository) UpdateUserPassword(
	ctx context.Context,
	id int,
	password string,
) error {
	_, err := r.db.ExecContext(
		ctx,
		"UPDATE users SET password=$1 WHERE id=$2",
		password, id,
	)
	return err
}

// EnsureAdmin creates the administrative account once. Re-running against an
// existing admin row is a no-op.
func (r PostgresRepository) EnsureAdmin(ctx context.Context, passwordHash string) error {
	_, err := r.db.ExecContext(
		ctx,
		"INSERT INTO users (username, password, balance) VALUES ('admin', $1, 999999) "+
			"ON CONFLICT (username) DO NOTHING",
		passwordHash,
	)
	return err
}

func (r PostgresRepository) CreateArtwork(
	ctx context.Context,
	a models.Artwork,
	settingsData string,
) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	err = tx.QueryRowContext(
		ctx,
		"INSERT INTO artworks (title, data, price, owner_id, is_private, signature) "+
			"VALUES ($1, $2, $3, $4, $5, $6) RETURNING id",
		a.Title, a.Data, a.Price, a.OwnerID, a.IsPrivate, a.Signature,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if settingsData != "" {
		_, err = tx.ExecContext(
			ctx,
			"INSERT INTO artwork_settings (artwork_id, settings_data) VALUES ($1, $2)",
			id, settingsData,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r PostgresRepository) GetArtworkByID(
	ctx context.Context,
	id int,
) (models.Artwork, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT a.id, a.title, a.data, a.price, a.owner_id, a.is_private,
		        COALESCE(a.signature, ''), a.created_at, u.username
		 FROM artworks a
		 JOIN users u ON a.owner_id = u.id
		 WHERE a.id=$1`,
		id,
	)
	var a models.Artwork
	err := row.Scan(
		&a.ID, &a.Title, &a.Data, &a.Price, &a.OwnerID,
		&a.IsPrivate, &a.Signature, &a.CreatedAt, &a.OwnerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Artwork{}, ErrArtworkNotFound
		}
		return models.Artwork{}, err
	}
	return a, nil
}

func (r PostgresRepository) UpdateArtwork(
	ctx context.Context,
	a models.Artwork,
) error {
	res, err := r.db.ExecContext(
		ctx,
		"UPDATE artworks SET title=$1, data=$2, price=$3, is_private=$4, signature=$5 "+
			"WHERE id=$6 AND owner_id=$7",
		a.Title, a.Data, a.Price, a.IsPrivate, a.Signature, a.ID, a.OwnerID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrArtworkNotFound
	}
	return nil
}

func (r PostgresRepository) DeleteArtwork(
	ctx context.Context,
	artworkID, ownerID int,
) error {
	res, err := r.db.ExecContext(
		ctx,
		"DELETE FROM artworks WHERE id=$1 AND owner_id=$2",
		artworkID, ownerID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrArtworkNotFound
	}
	return nil
}

const artworkListQuery = `SELECT a.id, a.title, a.data, a.price, a.owner_id, a.is_private,
       COALESCE(a.signature, ''), a.created_at, u.username
FROM artworks a
JOIN users u ON a.owner_id = u.id`

func (r PostgresRepository) GetRecentArtworksForUser(
	ctx context.Context,
	userID, limit int,
) ([]models.Artwork, error) {
	rows, err := r.db.QueryContext(
		ctx,
		artworkListQuery+" WHERE a.owner_id=$1 ORDER BY a.created_at DESC LIMIT $2",
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanArtworks(rows)
}

func (r PostgresRepository) ListPublicArtworks(
	ctx context.Context,
	limit int,
) ([]models.Artwork, error) {
	rows, err := r.db.QueryContext(
		ctx,
		artworkListQuery+" WHERE a.is_private = FALSE ORDER BY a.created_at DESC LIMIT $1",
		limit,
	)
	if err != nil {
		return nil, err
	}
	return scanArtworks(rows)
}

func (r PostgresRepository) SearchArtworks(
	ctx context.Context,
	query string,
) ([]models.Artwork, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(
		ctx,
		artworkListQuery+" WHERE a.title ILIKE $1 OR a.data ILIKE $1 ORDER BY a.created_at DESC",
		pattern,
	)
	if err != nil {
		return nil, err
	}
	return scanArtworks(rows)
}

func scanArtworks(rows *sql.Rows) ([]models.Artwork, error) {
	defer rows.Close()

	var artworks []models.Artwork
	for rows.Next() {
		var a models.Artwork
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Data, &a.Price, &a.OwnerID,
			&a.IsPrivate, &a.Signature, &a.CreatedAt, &a.OwnerName,
		); err != nil {
			return nil, err
		}
		artworks = append(artworks, a)
	}
	return artworks, rows.Err()
}

// PurchaseArtwork performs the whole ownership transfer as one transaction:
// debit buyer, credit seller, reassign the artwork, append the transaction
// record. The artwork row is locked first, so two concurrent purchases of the
// same artwork serialize and the owner check cannot be raced past.
func (r PostgresRepository) PurchaseArtwork(
	ctx context.Context,
	buyerID, artworkID int,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sellerID, price int
	err = tx.QueryRowContext(
		ctx,
		"SELECT owner_id, price FROM artworks WHERE id=$1 FOR UPDATE",
		artworkID,
	).Scan(&sellerID, &price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtworkNotFound
		}
		return err
	}

	if sellerID == buyerID {
		return ErrSelfPurchase
	}

	var balance int
	err = tx.QueryRowContext(
		ctx,
		"SELECT balance FROM users WHERE id=$1 FOR UPDATE",
		buyerID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if balance < price {
		return ErrInsufficientFunds
	}

	if _, err = tx.ExecContext(
		ctx,
		"UPDATE users SET balance = balance - $1 WHERE id=$2",
		price, buyerID,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(
		ctx,
		"UPDATE users SET balance = balance + $1 WHERE id=$2",
		price, sellerID,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(
		ctx,
		"UPDATE artworks SET owner_id=$1 WHERE id=$2",
		buyerID, artworkID,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(
		ctx,
		"INSERT INTO transactions (buyer_id, seller_id, artwork_id, amount, created_at) "+
			"VALUES ($1, $2, $3, $4, $5)",
		buyerID, sellerID, artworkID, price, time.Now(),
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r PostgresRepository) GetUserTransactions(
	ctx context.Context,
	userID int,
) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT t.id, t.buyer_id, t.seller_id, t.artwork_id, t.amount, t.created_at,
		        b.username, s.username, a.title
		 FROM transactions t
		 JOIN users b ON t.buyer_id = b.id
		 JOIN users s ON t.seller_id = s.id
		 JOIN artworks a ON t.artwork_id = a.id
		 WHERE t.buyer_id=$1 OR t.seller_id=$1
		 ORDER BY t.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.BuyerID, &t.SellerID, &t.ArtworkID, &t.Amount,
			&t.CreatedAt, &t.BuyerName, &t.SellerName, &t.ArtworkTitle,
		); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SaveArtworkSettings replaces the settings row for an artwork: delete then
// insert, in one transaction, so no partial update is ever visible.
func (r PostgresRepository) SaveArtworkSettings(
	ctx context.Context,
	artworkID int,
	settingsData string,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(
		ctx,
		"DELETE FROM artwork_settings WHERE artwork_id=$1",
		artworkID,
	); err != nil {
		return err
	}
	if _, err = tx.ExecContext(
		ctx,
		"INSERT INTO artwork_settings (artwork_id, settings_data) VALUES ($1, $2)",
		artworkID, settingsData,
	); err != nil {
		return err
	}
	return tx.Commit()
}

func (r PostgresRepository) GetArtworkSettings(
	ctx context.Context,
	artworkID int,
) (string, error) {
	var data string
	err := r.db.QueryRowContext(
		ctx,
		"SELECT settings_data FROM artwork_settings WHERE artwork_id=$1",
		artworkID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return data, nil
}

// CleanupExpired deletes rows older than maxAge from every table, keeping the
// admin account, and removes settings whose artwork is gone. Returns deleted
// row counts per table.
func (r PostgresRepository) CleanupExpired(
	ctx context.Context,
	maxAge time.Duration,
) (map[string]int, error) {
	cutoff := time.Now().Add(-maxAge)
	counts := make(map[string]int)

	deletes := []struct {
		table string
		query string
	}{
		{"artwork_settings", "DELETE FROM artwork_settings WHERE created_at < $1"},
		{"transactions", "DELETE FROM transactions WHERE created_at < $1"},
		{"artworks", "DELETE FROM artworks WHERE created_at < $1"},
		{"users", "DELETE FROM users WHERE created_at < $1 AND username != 'admin' " +
			"AND id NOT IN (SELECT owner_id FROM artworks) " +
			"AND id NOT IN (SELECT buyer_id FROM transactions) " +
			"AND id NOT IN (SELECT seller_id FROM transactions)"},
	}

	for _, d := range deletes {
		res, err := r.db.ExecContext(ctx, d.query, cutoff)
		if err != nil {
			return nil, fmt.Errorf("очистка %s: %w", d.table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		counts[d.table] += int(affected)
	}

	res, err := r.db.ExecContext(
		ctx,
		"DELETE FROM artwork_settings WHERE artwork_id NOT IN (SELECT id FROM artworks)",
	)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	counts["artwork_settings"] += int(affected)

	return counts, nil
}

// RecentCounts reports per-table row counts created within the window, used
// by the loopback-only healthcheck detail.
func (r PostgresRepository) RecentCounts(
	ctx context.Context,
	window time.Duration,
) (map[string]int, error) {
	since := time.Now().Add(-window)
	counts := make(map[string]int)
	for _, table := range []string{"users", "artworks", "transactions", "artwork_settings"} {
		var n int
		err := r.db.QueryRowContext(
			ctx,
			fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE created_at > $1", table),
			since,
		).Scan(&n)
		if err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
