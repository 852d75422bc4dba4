package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"artauction/repository"
	"artauction/service"
	"artauction/settings"
)

type contextKey string

const userIDKey contextKey = "user_id"

type Handler struct {
	svc       service.Service
	logs      *zap.SugaredLogger
	jwtSecret string
}

func NewHandler(svc service.Service, logger *zap.SugaredLogger, jwtSecret string) Handler {
	return Handler{
		svc:       svc,
		logs:      logger,
		jwtSecret: jwtSecret,
	}
}

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type ArtworkRequest struct {
	Title       string `json:"title"`
	Data        string `json:"data"`
	Price       int    `json:"price"`
	IsPrivate   bool   `json:"isPrivate"`
	Signature   string `json:"signature"`
	Description string `json:"description"`
}

type ImportRequest struct {
	ArtworkURL string `json:"artworkUrl"`
}

type SettingsRequest struct {
	Colors    string `json:"colors"`
	Animation bool   `json:"animation"`
	Public    bool   `json:"public"`
}

type ErrorResponse struct {
	Errors string `json:"errors"`
}

func (h Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := decodePayload(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный запрос")
		return
	}
	token, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}
		if errors.Is(err, service.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logs.Errorw("register failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusCreated, AuthResponse{Token: token})
}

func (h Handler) AuthHandler(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := decodePayload(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный запрос")
		return
	}
	token, err := h.svc.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, AuthResponse{Token: token})
}

func (h Handler) InfoHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	info, err := h.svc.GetInfo(r.Context(), userID)
	if err != nil {
		h.logs.Errorw("get info failed", "error", err, "user_id", userID)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusOK, info)
}

func (h Handler) ListArtworksHandler(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.svc.ListPublicArtworks(r.Context())
	if err != nil {
		h.logs.Errorw("list artworks failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusOK, artworks)
}

func (h Handler) GetArtworkHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	artwork, err := h.svc.GetArtwork(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrArtworkNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusOK, artwork)
}

func (h Handler) CreateArtworkHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	var req ArtworkRequest
	if err := decodePayload(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный запрос")
		return
	}
	if req.Price < 0 {
		respondWithError(w, http.StatusBadRequest, "Цена должна быть неотрицательной")
		return
	}
	id, err := h.svc.CreateArtwork(
		r.Context(), userID,
		req.Title, req.Data, req.Price, req.IsPrivate, req.Signature, req.Description,
	)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logs.Errorw("create artwork failed", "error", err, "user_id", userID)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]int{"id": id})
}

func (h Handler) UpdateArtworkHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ArtworkRequest
	if err := decodePayload(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный запрос")
		return
	}
	err := h.svc.UpdateArtwork(
		r.Context(), userID, id,
		req.Title, req.Data, req.Price, req.IsPrivate, req.Signature,
	)
	if err != nil {
		h.respondArtworkError(w, err, userID)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) DeleteArtworkHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteArtwork(r.Context(), userID, id); err != nil {
		h.respondArtworkError(w, err, userID)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) BuyHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Purchase(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrArtworkNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrSelfPurchase),
			errors.Is(err, repository.ErrInsufficientFunds):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logs.Errorw("purchase failed", "error", err, "user_id", userID, "artwork_id", id)
			respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	txs, err := h.svc.GetTransactions(r.Context(), userID)
	if err != nil {
		h.logs.Errorw("list transactions failed", "error", err, "user_id", userID)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusOK, txs)
}

func (h Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.SearchArtworks(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logs.Errorw("search failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusOK, results)
}

func (h Handler) ImportHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	var req ImportRequest
	if err := decodePayload(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный запрос")
		return
	}
	result, err := h.svc.ImportArtwork(r.Context(), userID, req.ArtworkURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFetchBlocked):
			respondWithError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidFormat),
			errors.Is(err, service.ErrValidation):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUpstream):
			respondWithError(w, http.StatusBadGateway, err.Error())
		default:
			h.logs.Errorw("import failed", "error", err, "user_id", userID)
			respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		}
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

func (h Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	value, err := h.svc.GetSettings(r.Context(), userID, id)
	if err != nil {
		h.respondArtworkError(w, err, userID)
		return
	}
	respondWithJSON(w, http.StatusOK, settingsResponse(value))
}

func (h Handler) SaveSettingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Пользователь не найден в контексте")
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req SettingsRequest
	if err := decodePayload(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный запрос")
		return
	}
	err := h.svc.SaveSettings(r.Context(), userID, id, settings.Fields{
		Colors:    req.Colors,
		Animation: req.Animation,
		Public:    req.Public,
	})
	if err != nil {
		h.respondArtworkError(w, err, userID)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.svc.GenerateArtwork())
}

func (h Handler) HealthcheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}
	if isLoopbackCaller(r.RemoteAddr) {
		recent, err := h.svc.RecentActivity(r.Context())
		if err == nil {
			resp["recent"] = recent
		}
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h Handler) CleanupHandler(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.Cleanup(r.Context())
	if err != nil {
		h.logs.Errorw("cleanup failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}

func (h Handler) JWTMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondWithError(w, http.StatusUnauthorized, "Отсутствует токен авторизации")
			return
		}

		const bearerPrefix = "Bearer "
		if len(authHeader) <= len(bearerPrefix) {
			respondWithError(w, http.StatusUnauthorized, "Неверный формат токена")
			return
		}

		tokenStr := authHeader[len(bearerPrefix):]
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("неверный метод подписи")
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			respondWithError(w, http.StatusUnauthorized, "Неверный токен")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Неверные данные токена")
			return
		}
		uid, err := strconv.Atoi(stringify(claims["user_id"]))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Неверный идентификатор пользователя в токене")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next(w, r.WithContext(ctx))
	}
}

func (h Handler) respondArtworkError(w http.ResponseWriter, err error, userID int) {
	switch {
	case errors.Is(err, repository.ErrArtworkNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		h.logs.Errorw("artwork operation failed", "error", err, "user_id", userID)
		respondWithError(w, http.StatusInternalServerError, "Внутренняя ошибка")
	}
}

func settingsResponse(value settings.Value) map[string]interface{} {
	switch value.Kind {
	case settings.Structured:
		return map[string]interface{}{"settings": value.Structured}
	case settings.PlainText:
		return map[string]interface{}{"description": value.Text}
	default:
		return map[string]interface{}{}
	}
}

func userIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	return userID, ok
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Неверный идентификатор")
		return 0, false
	}
	return id, true
}

func isLoopbackCaller(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func decodePayload(r *http.Request, object interface{}) error {
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()
	decoder.DisallowUnknownFields()
	return decoder.Decode(object)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Errors: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func stringify(val interface{}) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	default:
		return ""
	}
}
