package handlers

import (
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CipherHandler — CRUD шифров, перенос между папками, привязки к
// коллекциям и вложения. После каждой мутации пишется событие аудита
// с контекстом вызывающего.
type CipherHandler struct {
	CipherService     *service.CipherService
	CollectionService *service.CollectionService
	AccessService     *service.AccessService
	EventService      *service.EventService
	Logger            *zap.SugaredLogger
}

// NewCipherHandler создаёт хендлер шифров.
func NewCipherHandler(cipherService *service.CipherService, collectionService *service.CollectionService, accessService *service.AccessService, eventService *service.EventService, logger *zap.SugaredLogger) *CipherHandler {
	return &CipherHandler{
		CipherService:     cipherService,
		CollectionService: collectionService,
		AccessService:     accessService,
		EventService:      eventService,
		Logger:            logger,
	}
}

// cipherRequest — тело запроса создания/обновления шифра.
// Fields и Data принимаются как произвольный JSON и хранятся как есть.
type cipherRequest struct {
	Type           int             `json:"Type"`
	Name           string          `json:"Name"`
	Notes          *string         `json:"Notes"`
	Fields         json.RawMessage `json:"Fields"`
	Data           json.RawMessage `json:"Data"`
	Favorite       bool            `json:"Favorite"`
	OrganizationID *string         `json:"OrganizationId"`
	FolderID       *string         `json:"FolderId"`
}

func rawString(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := string(raw)
	return &s
}

// List возвращает все видимые вызывающему шифры.
func (h *CipherHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ciphers, err := h.AccessService.FindVisible(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("Ciphers.List: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(ciphers))
	for i := range ciphers {
		item, err := h.CipherService.Serialize(r.Context(), userID, &ciphers[i])
		if err != nil {
			h.Logger.Errorw("Ciphers.List: serialize error", "cipher_id", ciphers[i].ID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// Create создаёт шифр: личный для вызывающего либо организационный,
// если вызывающий имеет полный доступ к организации.
func (h *CipherHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req cipherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	in := service.CreateCipherInput{
		Type:     req.Type,
		Name:     req.Name,
		Notes:    req.Notes,
		Fields:   rawString(req.Fields),
		Favorite: req.Favorite,
	}
	if data := rawString(req.Data); data != nil {
		in.Data = *data
	}
	if req.OrganizationID != nil {
		allowed, err := h.AccessService.HasBlanketAccess(r.Context(), userID, *req.OrganizationID)
		if err != nil {
			h.Logger.Errorw("Ciphers.Create: access check error", "user_id", userID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		in.OrgID = req.OrganizationID
	} else {
		in.UserID = &userID
	}

	cipher, err := h.CipherService.Create(r.Context(), in)
	if errors.Is(err, model.ErrCipherOwner) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Logger.Errorw("Ciphers.Create: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if req.FolderID != nil {
		if err := h.CipherService.MoveToFolder(r.Context(), userID, cipher.ID, req.FolderID); err != nil {
			h.Logger.Warnw("Ciphers.Create: folder assignment failed", "cipher_id", cipher.ID, "error", err)
		}
	}

	h.recordCipherEvent(r, userID, model.EventCipherCreated, cipher.ID)
	h.respondSerialized(w, r, userID, cipher.ID)
}

// Get возвращает один шифр, если он доступен вызывающему.
func (h *CipherHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	cipher, err := h.CipherService.GetByID(r.Context(), cipherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("Ciphers.Get: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	readable, err := h.AccessService.CanRead(r.Context(), userID, cipher)
	if err != nil {
		h.Logger.Errorw("Ciphers.Get: access check error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !readable {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	item, err := h.CipherService.Serialize(r.Context(), userID, cipher)
	if err != nil {
		h.Logger.Errorw("Ciphers.Get: serialize error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Update перезаписывает содержимое шифра. Владелец не меняется.
func (h *CipherHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	var req cipherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	cipher, err := h.CipherService.GetByID(r.Context(), cipherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("Ciphers.Update: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if req.Type != 0 {
		cipher.Type = req.Type
	}
	if req.Name != "" {
		cipher.Name = req.Name
	}
	cipher.Notes = req.Notes
	cipher.Fields = rawString(req.Fields)
	cipher.Favorite = req.Favorite
	if data := rawString(req.Data); data != nil {
		cipher.Data = *data
	}

	err = h.CipherService.Update(r.Context(), userID, cipher)
	if errors.Is(err, service.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		h.Logger.Errorw("Ciphers.Update: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.recordCipherEvent(r, userID, model.EventCipherUpdated, cipher.ID)
	h.respondSerialized(w, r, userID, cipher.ID)
}

// Delete удаляет шифр вместе с привязками и метаданными вложений.
func (h *CipherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	err := h.CipherService.Delete(r.Context(), userID, cipherID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		h.Logger.Errorw("Ciphers.Delete: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// шифра уже нет, событие сохранит присланный id без org/user-контекста
	h.recordCipherEvent(r, userID, model.EventCipherDeleted, cipherID)
	w.WriteHeader(http.StatusOK)
}

// MoveToFolder переносит шифр в папку вызывающего (null — из папки).
func (h *CipherHandler) MoveToFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	var req struct {
		FolderID *string `json:"FolderId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.CipherService.MoveToFolder(r.Context(), userID, cipherID, req.FolderID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case errors.Is(err, repo.ErrNoFolderMapping):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.Logger.Errorw("Ciphers.MoveToFolder: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// LinkCollection привязывает шифр организации к её коллекции.
func (h *CipherHandler) LinkCollection(w http.ResponseWriter, r *http.Request) {
	h.changeCollectionLink(w, r, h.CollectionService.LinkCipher)
}

// UnlinkCollection убирает привязку шифра к коллекции.
func (h *CipherHandler) UnlinkCollection(w http.ResponseWriter, r *http.Request) {
	h.changeCollectionLink(w, r, h.CollectionService.UnlinkCipher)
}

func (h *CipherHandler) changeCollectionLink(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, callerID, cipherID, collectionID string) error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")
	collectionID := chi.URLParam(r, "collectionId")

	err := op(r.Context(), userID, cipherID, collectionID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		h.Logger.Errorw("Ciphers.Collections: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.recordCipherEvent(r, userID, model.EventCipherUpdatedCollections, cipherID)
	w.WriteHeader(http.StatusOK)
}

// AddAttachment регистрирует метаданные вложения шифра.
func (h *CipherHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	var req struct {
		FileName string `json:"FileName"`
		FileSize int64  `json:"FileSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileName == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	a, err := h.CipherService.AddAttachment(r.Context(), userID, cipherID, req.FileName, req.FileSize)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		h.Logger.Errorw("Ciphers.AddAttachment: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.recordCipherEvent(r, userID, model.EventCipherAttachmentCreated, cipherID)
	writeJSON(w, http.StatusOK, map[string]any{
		"Id":       a.ID,
		"FileName": a.FileName,
		"Size":     a.FileSize,
		"Object":   "attachment",
	})
}

// DeleteAttachments удаляет метаданные всех вложений шифра.
func (h *CipherHandler) DeleteAttachments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	err := h.CipherService.DeleteAttachments(r.Context(), userID, cipherID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		h.Logger.Errorw("Ciphers.DeleteAttachments: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.recordCipherEvent(r, userID, model.EventCipherAttachmentDeleted, cipherID)
	w.WriteHeader(http.StatusOK)
}

// Purge удаляет все личные шифры вызывающего.
func (h *CipherHandler) Purge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deleted, err := h.CipherService.PurgeOwned(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("Ciphers.Purge: service error", "user_id", userID, "deleted", deleted, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"Deleted": deleted})
}

// recordCipherEvent пишет событие аудита после успешной мутации.
// Отказ аудита не отменяет уже применённую мутацию, только логируется.
func (h *CipherHandler) recordCipherEvent(r *http.Request, userID string, eventType int, cipherID string) {
	cc := clientContext(r, userID)
	if err := h.EventService.Record(r.Context(), eventType, nil, &cipherID, cc); err != nil {
		h.Logger.Errorw("cipher event not recorded", "event_type", eventType, "cipher_id", cipherID, "error", err)
	}
}

func (h *CipherHandler) respondSerialized(w http.ResponseWriter, r *http.Request, userID, cipherID string) {
	cipher, err := h.CipherService.GetByID(r.Context(), cipherID)
	if err != nil {
		h.Logger.Errorw("cipher reload failed", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	item, err := h.CipherService.Serialize(r.Context(), userID, cipher)
	if err != nil {
		h.Logger.Errorw("cipher serialize failed", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
