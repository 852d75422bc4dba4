package service

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"artauction/art"
	"artauction/models"
	"artauction/safefetch"
	"artauction/settings"
)

//go:generate mockgen -destination=./mocks/mock_repository.go -package=mocks artauction/service Repository,Fetcher

type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, id int) (models.User, error)
	CreateUser(ctx context.Context, username, password string) (int, error)
	UpdateUserPassword(ctx context.Context, id int, password string) error
	EnsureAdmin(ctx context.Context, passwordHash string) error
	CreateArtwork(ctx context.Context, a models.Artwork, settingsData string) (int, error)
	GetArtworkByID(ctx context.Context, id int) (models.Artwork, error)
	UpdateArtwork(ctx context.Context, a models.Artwork) error
	DeleteArtwork(ctx context.Context, artworkID, ownerID int) error
	GetRecentArtworksForUser(ctx context.Context, userID, limit int) ([]models.Artwork, error)
	ListPublicArtworks(ctx context.Context, limit int) ([]models.Artwork, error)
	SearchArtworks(ctx context.Context, query string) ([]models.Artwork, error)
	PurchaseArtwork(ctx context.Context, buyerID, artworkID int) error
	GetUserTransactions(ctx context.Context, userID int) ([]models.Transaction, error)
	SaveArtworkSettings(ctx context.Context, artworkID int, settingsData string) error
	GetArtworkSettings(ctx context.Context, artworkID int) (string, error)
	CleanupExpired(ctx context.Context, maxAge time.Duration) (map[string]int, error)
	RecentCounts(ctx context.Context, window time.Duration) (map[string]int, error)
}

// Fetcher is the safe-fetch gateway as seen from the import pipeline.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) safefetch.Outcome
}

var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrValidation         = errors.New("заполните все поля")
	ErrNotOwner           = errors.New("доступ только для владельца")
	ErrFetchBlocked       = errors.New("небезопасный URL")
	ErrUpstream           = errors.New("ошибка запроса")
	ErrInvalidFormat      = errors.New("неверный формат JSON")
)

const (
	importedTitle     = "Импортированная композиция"
	importedSignature = "imported"
	importedPrice     = 100

	listLimit       = 20
	publicListLimit = 50
	expiryAge       = 7 * time.Minute
	recentWindow    = 5 * time.Minute
)

type Service struct {
	repo      Repository
	fetcher   Fetcher
	logs      *zap.SugaredLogger
	jwtSecret string
}

func NewService(repo Repository, fetcher Fetcher, logger *zap.SugaredLogger, jwtSecret string) Service {
	return Service{
		repo:      repo,
		fetcher:   fetcher,
		logs:      logger,
		jwtSecret: jwtSecret,
	}
}

// Authenticate verifies a password against the stored credential and returns
// a signed session token. Legacy md5 digests are verified once and rewritten
// to bcrypt on success; users who never log in again stay on the legacy
// scheme.
func (s Service) Authenticate(
	ctx context.Context,
	username, password string,
) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if isBcryptHash(user.Password) {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return "", ErrInvalidCredentials
		}
	} else {
		if legacyDigest(password) != user.Password {
			return "", ErrInvalidCredentials
		}
		upgraded, err := bcryptHash(password)
		if err != nil {
			return "", err
		}
		if err := s.repo.UpdateUserPassword(ctx, user.ID, upgraded); err != nil {
			return "", err
		}
		s.logs.Infow("legacy credential upgraded", "user_id", user.ID)
	}

	return generateJWT(user, s.jwtSecret)
}

func (s Service) Register(
	ctx context.Context,
	username, password string,
) (string, error) {
	if username == "" || password == "" {
		return "", ErrValidation
	}
	hashed, err := bcryptHash(password)
	if err != nil {
		return "", err
	}
	id, err := s.repo.CreateUser(ctx, username, hashed)
	if err != nil {
		return "", err
	}
	user := models.User{ID: id, Username: username, Balance: 1000}
	return generateJWT(user, s.jwtSecret)
}

// BootstrapAdmin creates the admin account with the operator-provided
// password, or a random undisclosed one so the account stays unreachable
// until an operator sets a password explicitly.
func (s Service) BootstrapAdmin(ctx context.Context, password string) error {
	if password == "" {
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		password = secret
		s.logs.Infow("admin password not configured, generated a random one")
	}
	hashed, err := bcryptHash(password)
	if err != nil {
		return err
	}
	return s.repo.EnsureAdmin(ctx, hashed)
}

type InfoResponse struct {
	Username string        `json:"username"`
	Balance  int           `json:"balance"`
	Artworks []ArtworkInfo `json:"artworks"`
}

type ArtworkInfo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Data      string `json:"data"`
	Price     int    `json:"price"`
	OwnerID   int    `json:"ownerId"`
	OwnerName string `json:"ownerName"`
	IsPrivate bool   `json:"isPrivate"`
	Signature string `json:"signature"`
	CreatedAt string `json:"createdAt"`
}

func toArtworkInfo(a models.Artwork) ArtworkInfo {
	return ArtworkInfo{
		ID:        a.ID,
		Title:     a.Title,
		Data:      a.Data,
		Price:     a.Price,
		OwnerID:   a.OwnerID,
		OwnerName: a.OwnerName,
		IsPrivate: a.IsPrivate,
		Signature: a.Signature,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func toArtworkInfos(artworks []models.Artwork) []ArtworkInfo {
	infos := make([]ArtworkInfo, 0, len(artworks))
	for _, a := range artworks {
		infos = append(infos, toArtworkInfo(a))
	}
	return infos
}

func (s Service) GetInfo(ctx context.Context, userID int) (InfoResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return InfoResponse{}, err
	}
	artworks, err := s.repo.GetRecentArtworksForUser(ctx, userID, listLimit)
	if err != nil {
		return InfoResponse{}, err
	}
	return InfoResponse{
		Username: user.Username,
		Balance:  user.Balance,
		Artworks: toArtworkInfos(artworks),
	}, nil
}

func (s Service) CreateArtwork(
	ctx context.Context,
	ownerID int,
	title, data string,
	price int,
	isPrivate bool,
	signature, description string,
) (int, error) {
	if title == "" || data == "" {
		return 0, ErrValidation
	}
	return s.repo.CreateArtwork(ctx, models.Artwork{
		Title:     title,
		Data:      data,
		Price:     price,
		OwnerID:   ownerID,
		IsPrivate: isPrivate,
		Signature: signature,
	}, settings.EncodeDescription(description))
}

func (s Service) GetArtwork(ctx context.Context, id int) (ArtworkInfo, error) {
	a, err := s.repo.GetArtworkByID(ctx, id)
	if err != nil {
		return ArtworkInfo{}, err
	}
	return toArtworkInfo(a), nil
}

func (s Service) UpdateArtwork(
	ctx context.Context,
	ownerID, artworkID int,
	title, data string,
	price int,
	isPrivate bool,
	signature string,
) error {
	if title == "" || data == "" {
		return ErrValidation
	}
	return s.repo.UpdateArtwork(ctx, models.Artwork{
		ID:        artworkID,
		Title:     title,
		Data:      data,
		Price:     price,
		OwnerID:   ownerID,
		IsPrivate: isPrivate,
		Signature: signature,
	})
}

func (s Service) DeleteArtwork(ctx context.Context, ownerID, artworkID int) error {
	return s.repo.DeleteArtwork(ctx, artworkID, ownerID)
}

func (s Service) ListPublicArtworks(ctx context.Context) ([]ArtworkInfo, error) {
	artworks, err := s.repo.ListPublicArtworks(ctx, publicListLimit)
	if err != nil {
		return nil, err
	}
	return toArtworkInfos(artworks), nil
}

func (s Service) SearchArtworks(ctx context.Context, query string) ([]ArtworkInfo, error) {
	if query == "" {
		return nil, nil
	}
	artworks, err := s.repo.SearchArtworks(ctx, query)
	if err != nil {
		return nil, err
	}
	return toArtworkInfos(artworks), nil
}

// Purchase transfers ownership of an artwork to the buyer. All mutations
// happen inside the repository transaction; business-rule failures come back
// as the repository's sentinel errors.
func (s Service) Purchase(ctx context.Context, buyerID, artworkID int) error {
	if err := s.repo.PurchaseArtwork(ctx, buyerID, artworkID); err != nil {
		return err
	}
	s.logs.Infow("artwork purchased", "buyer_id", buyerID, "artwork_id", artworkID)
	return nil
}

type TransactionInfo struct {
	ID           int    `json:"id"`
	BuyerName    string `json:"buyerName"`
	SellerName   string `json:"sellerName"`
	ArtworkTitle string `json:"artworkTitle"`
	Amount       int    `json:"amount"`
	CreatedAt    string `json:"createdAt"`
}

func (s Service) GetTransactions(ctx context.Context, userID int) ([]TransactionInfo, error) {
	txs, err := s.repo.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	infos := make([]TransactionInfo, 0, len(txs))
	for _, t := range txs {
		infos = append(infos, TransactionInfo{
			ID:           t.ID,
			BuyerName:    t.BuyerName,
			SellerName:   t.SellerName,
			ArtworkTitle: t.ArtworkTitle,
			Amount:       t.Amount,
			CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		})
	}
	return infos, nil
}

type ImportResult struct {
	ArtworkID  int    `json:"artworkId"`
	Preview    string `json:"preview"`
	FetchedURL string `json:"fetchedUrl"`
}

// ImportArtwork fetches artwork data from a user-supplied URL through the
// safe-fetch gateway and creates a public artwork from the payload. The
// payload must be a JSON object with a "shapes" key; anything else is a
// validation failure, never a crash.
func (s Service) ImportArtwork(
	ctx context.Context,
	userID int,
	rawURL string,
) (ImportResult, error) {
	if rawURL == "" {
		return ImportResult{}, ErrValidation
	}

	outcome := s.fetcher.Fetch(ctx, rawURL)
	switch outcome.Kind {
	case safefetch.OutcomeBlocked:
		return ImportResult{}, fmt.Errorf("%w: %s", ErrFetchBlocked, outcome.Reason)
	case safefetch.OutcomeUpstreamError:
		return ImportResult{}, fmt.Errorf("%w: %s", ErrUpstream, outcome.Reason)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(outcome.Body, &payload); err != nil {
		return ImportResult{}, ErrInvalidFormat
	}
	shapes, ok := payload["shapes"]
	if !ok {
		return ImportResult{}, ErrInvalidFormat
	}
	shapesJSON, err := json.Marshal(shapes)
	if err != nil {
		return ImportResult{}, ErrInvalidFormat
	}

	title := importedTitle
	if t, ok := payload["title"].(string); ok && t != "" {
		title = t
	}

	id, err := s.repo.CreateArtwork(ctx, models.Artwork{
		Title:     title,
		Data:      string(shapesJSON),
		Price:     importPrice(payload["price"]),
		OwnerID:   userID,
		IsPrivate: false,
		Signature: importedSignature,
	}, "")
	if err != nil {
		return ImportResult{}, err
	}

	s.logs.Infow("artwork imported", "user_id", userID, "artwork_id", id, "url", outcome.FinalURL)
	return ImportResult{
		ArtworkID:  id,
		Preview:    string(outcome.Body),
		FetchedURL: outcome.FinalURL,
	}, nil
}

// importPrice accepts a non-negative whole number or a digit string; anything
// else falls back to the default.
func importPrice(v interface{}) int {
	switch p := v.(type) {
	case float64:
		if p >= 0 && p == math.Trunc(p) {
			return int(p)
		}
	case string:
		// Digits only, no signs; out-of-range strings fall back rather
		// than overflow.
		for _, c := range p {
			if c < '0' || c > '9' {
				return importedPrice
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return importedPrice
		}
		return n
	}
	return importedPrice
}

func (s Service) GetSettings(ctx context.Context, userID, artworkID int) (settings.Value, error) {
	if err := s.requireOwner(ctx, userID, artworkID); err != nil {
		return settings.Value{}, err
	}
	raw, err := s.repo.GetArtworkSettings(ctx, artworkID)
	if err != nil {
		return settings.Value{}, err
	}
	return settings.Decode(raw), nil
}

func (s Service) SaveSettings(
	ctx context.Context,
	userID, artworkID int,
	fields settings.Fields,
) error {
	if err := s.requireOwner(ctx, userID, artworkID); err != nil {
		return err
	}
	encoded, err := settings.EncodeFields(fields)
	if err != nil {
		return err
	}
	return s.repo.SaveArtworkSettings(ctx, artworkID, encoded)
}

func (s Service) requireOwner(ctx context.Context, userID, artworkID int) error {
	artwork, err := s.repo.GetArtworkByID(ctx, artworkID)
	if err != nil {
		return err
	}
	if artwork.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}

type GeneratedArtwork struct {
	Title string `json:"title"`
	Data  string `json:"data"`
}

func (s Service) GenerateArtwork() GeneratedArtwork {
	return GeneratedArtwork{
		Title: art.RandomTitle(),
		Data:  art.Generate(),
	}
}

func (s Service) Cleanup(ctx context.Context) (map[string]int, error) {
	counts, err := s.repo.CleanupExpired(ctx, expiryAge)
	if err != nil {
		return nil, err
	}
	s.logs.Infow("expired records cleaned up", "counts", counts)
	return counts, nil
}

func (s Service) RecentActivity(ctx context.Context) (map[string]int, error) {
	return s.repo.RecentCounts(ctx, recentWindow)
}

func randomSecret() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func isBcryptHash(stored string) bool {
	return strings.HasPrefix(stored, "$2")
}

func legacyDigest(password string) string {
	sum := md5.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

func bcryptHash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateJWT(
	user models.User,
	secret string,
) (string, error) {
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.MapClaims{
			"user_id":  user.ID,
			"username": user.Username,
			"exp":      time.Now().Add(24 * time.Hour).Unix(),
		},
	)
	tokenStr, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return tokenStr, nil
}
