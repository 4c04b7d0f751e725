package handlers

import (
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler — выдача журнала аудита и приём событий от клиентов.
type EventHandler struct {
	EventService  *service.EventService
	AccessService *service.AccessService
	Logger        *zap.SugaredLogger
}

// NewEventHandler создаёт хендлер событий.
func NewEventHandler(eventService *service.EventService, accessService *service.AccessService, logger *zap.SugaredLogger) *EventHandler {
	return &EventHandler{EventService: eventService, AccessService: accessService, Logger: logger}
}

// eventRange разбирает границы диапазона из query-параметров start/end.
func eventRange(r *http.Request) (time.Time, time.Time, error) {
	start, err := service.ParseDate(r.URL.Query().Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := service.ParseDate(r.URL.Query().Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// OrgEvents — события организации за период. Доступно только Owner/Admin.
func (h *EventHandler) OrgEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	orgID := chi.URLParam(r, "orgId")

	admin, err := h.AccessService.IsAdminOrOwner(r.Context(), userID, orgID)
	if err != nil {
		h.Logger.Errorw("Events.Org: access check error", "org_id", orgID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !admin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	start, end, err := eventRange(r)
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	items, err := h.EventService.FindByOrganization(r.Context(), orgID, start, end)
	if err != nil {
		h.Logger.Errorw("Events.Org: service error", "org_id", orgID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// CipherEvents — события шифра за период.
func (h *EventHandler) CipherEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	cipherID := chi.URLParam(r, "cipherId")

	start, end, err := eventRange(r)
	if err != nil {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	items, err := h.EventService.FindByCipher(r.Context(), cipherID, start, end)
	if err != nil {
		h.Logger.Errorw("Events.Cipher: service error", "cipher_id", cipherID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, listEnvelope(items))
}

// Collect принимает батч событий от клиента. Элементы независимы:
// невалидные пропускаются с записью в лог, остальные сохраняются.
func (h *EventHandler) Collect(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var occurrences []service.Occurrence
	if err := json.NewDecoder(r.Body).Decode(&occurrences); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	err := h.EventService.Collect(r.Context(), occurrences, clientContext(r, userID))
	if errors.Is(err, service.ErrBadOccurrence) {
		h.Logger.Warnw("Events.Collect: some items skipped", "user_id", userID, "error", err)
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		h.Logger.Errorw("Events.Collect: store error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
