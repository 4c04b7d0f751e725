package repo

import (
	"VaultKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MembershipRepository — членства пользователей в организациях.
type MembershipRepository interface {
	// Get возвращает членство пары (пользователь, организация).
	// Отсутствие — gorm.ErrRecordNotFound; для резолвера доступа это
	// не ошибка, а отсутствие прав по этому пути.
	Get(ctx context.Context, userID, orgID string) (*model.Membership, error)

	// Save создаёт или обновляет членство по составному ключу.
	Save(ctx context.Context, m *model.Membership) error
}

type membershipRepo struct {
	db *gorm.DB
}

// NewMembershipRepository создаёт реализацию репозитория членств.
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepo{db: db}
}

func (r *membershipRepo) Get(ctx context.Context, userID, orgID string) (*model.Membership, error) {
	var m model.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND org_id = ?", userID, orgID).
		Take(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepo) Save(ctx context.Context, m *model.Membership) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "org_id"}},
		UpdateAll: true,
	}).Create(m).Error
}
