package repo

import (
	"VaultKeeper/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepository — записи аудита. Записи только добавляются; повторная
// отправка того же uuid перезаписывает запись (идемпотентный upsert),
// пользовательского удаления нет.
type EventRepository interface {
	// Upsert сохраняет событие по первичному ключу: существующая строка
	// с тем же uuid перезаписывается, дубликат не создаётся.
	Upsert(ctx context.Context, e *model.Event) error

	// FindByOrganization — события организации в диапазоне дат.
	FindByOrganization(ctx context.Context, orgID string, start, end time.Time) ([]model.Event, error)

	// FindByCipher — события шифра в диапазоне дат.
	FindByCipher(ctx context.Context, cipherID string, start, end time.Time) ([]model.Event, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepository создаёт реализацию репозитория событий.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Upsert(ctx context.Context, e *model.Event) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(e).Error
}

func (r *eventRepo) FindByOrganization(ctx context.Context, orgID string, start, end time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND event_date BETWEEN ? AND ?", orgID, start, end).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepo) FindByCipher(ctx context.Context, cipherID string, start, end time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("cipher_id = ? AND event_date BETWEEN ? AND ?", cipherID, start, end).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
