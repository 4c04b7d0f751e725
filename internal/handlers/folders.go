package handlers

import (
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FolderHandler — личные папки.
type FolderHandler struct {
	FolderService *service.FolderService
	CipherService *service.CipherService
	Logger        *zap.SugaredLogger
}

// NewFolderHandler создаёт хендлер папок.
func NewFolderHandler(folderService *service.FolderService, cipherService *service.CipherService, logger *zap.SugaredLogger) *FolderHandler {
	return &FolderHandler{FolderService: folderService, CipherService: cipherService, Logger: logger}
}

// List возвращает папки вызывающего в постраничном конверте.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	folders, err := h.FolderService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("Folders.List: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(folders))
	for i := range folders {
		items = append(items, service.SerializeFolder(&folders[i]))
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// Ciphers — шифры в папке вызывающего.
func (h *FolderHandler) Ciphers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	folderID := chi.URLParam(r, "folderId")

	ciphers, err := h.CipherService.ListByFolder(r.Context(), userID, folderID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case err != nil:
		h.Logger.Errorw("Folders.Ciphers: service error", "folder_id", folderID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(ciphers))
	for i := range ciphers {
		item, err := h.CipherService.Serialize(r.Context(), userID, &ciphers[i])
		if err != nil {
			h.Logger.Errorw("Folders.Ciphers: serialize error", "cipher_id", ciphers[i].ID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// Create создаёт папку вызывающего.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name string `json:"Name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	folder, err := h.FolderService.Create(r.Context(), userID, req.Name)
	if err != nil {
		h.Logger.Errorw("Folders.Create: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, service.SerializeFolder(folder))
}
