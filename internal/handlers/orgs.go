package handlers

import (
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrgHandler — административная поверхность организации: шифры, коллекции,
// членства. Все операции требуют членства, управляющие — роли Owner/Admin.
type OrgHandler struct {
	CipherService     *service.CipherService
	CollectionService *service.CollectionService
	OrgService        *service.OrgService
	EventService      *service.EventService
	Logger            *zap.SugaredLogger
}

// NewOrgHandler создаёт хендлер организаций.
func NewOrgHandler(cipherService *service.CipherService, collectionService *service.CollectionService, orgService *service.OrgService, eventService *service.EventService, logger *zap.SugaredLogger) *OrgHandler {
	return &OrgHandler{
		CipherService:     cipherService,
		CollectionService: collectionService,
		OrgService:        orgService,
		EventService:      eventService,
		Logger:            logger,
	}
}

// Ciphers — все шифры организации для её Owner/Admin.
func (h *OrgHandler) Ciphers(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orgID := chi.URLParam(r, "orgId")

	ciphers, err := h.CipherService.ListByOrg(r.Context(), userID, orgID)
	if errors.Is(err, service.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		h.Logger.Errorw("Orgs.Ciphers: service error", "org_id", orgID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(ciphers))
	for i := range ciphers {
		item, err := h.CipherService.Serialize(r.Context(), userID, &ciphers[i])
		if err != nil {
			h.Logger.Errorw("Orgs.Ciphers: serialize error", "cipher_id", ciphers[i].ID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		items = append(items, item)
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// Collections — коллекции организации для её участников.
func (h *OrgHandler) Collections(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orgID := chi.URLParam(r, "orgId")

	cols, err := h.CollectionService.ListByOrg(r.Context(), userID, orgID)
	if errors.Is(err, service.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		h.Logger.Errorw("Orgs.Collections: service error", "org_id", orgID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	items := make([]map[string]any, 0, len(cols))
	for _, col := range cols {
		items = append(items, map[string]any{
			"Id":             col.ID,
			"OrganizationId": col.OrgID,
			"Name":           col.Name,
			"Object":         "collection",
		})
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// CreateCollection создаёт коллекцию организации.
func (h *OrgHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orgID := chi.URLParam(r, "orgId")

	var req struct {
		Name string `json:"Name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	col, err := h.CollectionService.Create(r.Context(), userID, orgID, req.Name)
	if errors.Is(err, service.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		h.Logger.Errorw("Orgs.CreateCollection: service error", "org_id", orgID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.recordOrgEvent(r, userID, model.EventCollectionCreated, orgID, &col.ID)
	writeJSON(w, http.StatusOK, map[string]any{
		"Id":             col.ID,
		"OrganizationId": col.OrgID,
		"Name":           col.Name,
		"Object":         "collection",
	})
}

// AssignCollectionUser выдаёт пользователю допуск к коллекции.
func (h *OrgHandler) AssignCollectionUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orgID := chi.URLParam(r, "orgId")
	collectionID := chi.URLParam(r, "collectionId")
	targetID := chi.URLParam(r, "userId")

	err := h.CollectionService.AssignUser(r.Context(), userID, orgID, collectionID, targetID)
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		h.Logger.Errorw("Orgs.AssignCollectionUser: service error", "collection_id", collectionID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// SetMembership создаёт или обновляет членство пользователя в организации.
func (h *OrgHandler) SetMembership(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orgID := chi.URLParam(r, "orgId")
	targetID := chi.URLParam(r, "userId")

	var req struct {
		Role      model.OrgRole `json:"Type"`
		AccessAll bool          `json:"AccessAll"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Role < model.RoleOwner || req.Role > model.RoleMember {
		http.Error(w, "invalid role", http.StatusBadRequest)
		return
	}

	err := h.OrgService.SetMembership(r.Context(), userID, orgID, targetID, req.Role, req.AccessAll)
	if errors.Is(err, service.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	if err != nil {
		h.Logger.Errorw("Orgs.SetMembership: service error", "org_id", orgID, "user_id", targetID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.recordOrgEvent(r, userID, model.EventOrgUserUpdated, orgID, nil)
	w.WriteHeader(http.StatusOK)
}

// recordOrgEvent пишет орг-событие аудита; отказ аудита только логируется.
func (h *OrgHandler) recordOrgEvent(r *http.Request, userID string, eventType int, orgID string, collectionID *string) {
	cc := clientContext(r, userID)
	if err := h.EventService.RecordOrg(r.Context(), eventType, orgID, collectionID, cc); err != nil {
		h.Logger.Errorw("org event not recorded", "event_type", eventType, "org_id", orgID, "error", err)
	}
}
