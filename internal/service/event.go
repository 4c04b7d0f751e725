package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrBadOccurrence — элемент батча /events/collect не прошёл разбор.
// Остальные элементы при этом обрабатываются.
var ErrBadOccurrence = errors.New("invalid event occurrence")

// ClientContext — контекст вызывающего: кто действовал, с какого
// устройства и адреса. Заполняется слоем аутентификации.
type ClientContext struct {
	UserID     string
	DeviceType int
	IP         string
}

// Occurrence — сырое событие, каким его прислал клиент.
type Occurrence struct {
	Type     int     `json:"Type"`
	Date     string  `json:"Date"`
	CipherID *string `json:"CipherId"`
}

// EventService превращает сырые события в атрибутированные записи аудита
// и сохраняет их идемпотентно.
type EventService struct {
	events  repo.EventRepository
	ciphers repo.CipherRepository
}

// NewEventService создаёт сервис аудита.
func NewEventService(e repo.EventRepository, c repo.CipherRepository) *EventService {
	return &EventService{events: e, ciphers: c}
}

// Record обогащает событие контекстом шифра и сохраняет его.
// Если шифр указан и найден, его принадлежность (организация/пользователь)
// авторитетна и перезаписывает поля события: так событие организации
// получает org-контекст, даже когда клиент знал только id шифра.
// Если шифр уже удалён или не существовал, записывается присланный id
// как есть, без org/user-контекста — это не ошибка.
func (s *EventService) Record(ctx context.Context, eventType int, eventDate *time.Time, cipherID *string, cc ClientContext) error {
	event := model.NewEvent(eventType, eventDate)

	if cipherID != nil {
		cipher, err := s.ciphers.GetByID(ctx, *cipherID)
		switch {
		case err == nil:
			event.OrgID = cipher.OrganizationID
			event.CipherID = &cipher.ID
			event.UserID = cipher.UserID
		case errors.Is(err, gorm.ErrRecordNotFound):
			event.CipherID = cipherID
		default:
			return err
		}
	}

	event.ActUserID = &cc.UserID
	event.DeviceType = &cc.DeviceType
	event.IPAddress = &cc.IP

	return s.events.Upsert(ctx, event)
}

// RecordOrg сохраняет событие организации. Контекст организации известен
// вызывающему, обогащение по шифру не нужно.
func (s *EventService) RecordOrg(ctx context.Context, eventType int, orgID string, collectionID *string, cc ClientContext) error {
	event := model.NewEvent(eventType, nil)
	event.OrgID = &orgID
	event.CollectionID = collectionID
	event.ActUserID = &cc.UserID
	event.DeviceType = &cc.DeviceType
	event.IPAddress = &cc.IP
	return s.events.Upsert(ctx, event)
}

// Collect обрабатывает батч событий. Элементы независимы: ошибка разбора
// одного не мешает остальным и возвращается как ErrBadOccurrence.
// Отказ хранилища фатален и прерывает весь батч.
func (s *EventService) Collect(ctx context.Context, occurrences []Occurrence, cc ClientContext) error {
	var bad []error
	for i, occ := range occurrences {
		date, err := ParseDate(occ.Date)
		if err != nil {
			bad = append(bad, fmt.Errorf("%w: item %d: %v", ErrBadOccurrence, i, err))
			continue
		}
		if err := s.Record(ctx, occ.Type, &date, occ.CipherID, cc); err != nil {
			return err
		}
	}
	return errors.Join(bad...)
}

// FindByOrganization — сериализованные события организации в диапазоне дат.
func (s *EventService) FindByOrganization(ctx context.Context, orgID string, start, end time.Time) ([]map[string]any, error) {
	events, err := s.events.FindByOrganization(ctx, orgID, start, end)
	if err != nil {
		return nil, err
	}
	return serializeEvents(events), nil
}

// FindByCipher — сериализованные события шифра в диапазоне дат.
func (s *EventService) FindByCipher(ctx context.Context, cipherID string, start, end time.Time) ([]map[string]any, error) {
	events, err := s.events.FindByCipher(ctx, cipherID, start, end)
	if err != nil {
		return nil, err
	}
	return serializeEvents(events), nil
}

func serializeEvents(events []model.Event) []map[string]any {
	out := make([]map[string]any, 0, len(events))
	for i := range events {
		out = append(out, SerializeEvent(&events[i]))
	}
	return out
}
