package repo

import (
	"VaultKeeper/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRepository — коллекции организаций, допуски пользователей
// и привязки шифров к коллекциям.
type CollectionRepository interface {
	Create(ctx context.Context, c *model.Collection) error

	// FindByOrg — все коллекции организации.
	FindByOrg(ctx context.Context, orgID string) ([]model.Collection, error)

	// AssignUser выдаёт пользователю явный допуск к коллекции.
	// Повторная выдача — no-op.
	AssignUser(ctx context.Context, userID, collectionID string) error

	// LinkCipher привязывает шифр к коллекции. Повторная привязка — no-op.
	LinkCipher(ctx context.Context, collectionID, cipherID string) error

	// UnlinkCipher убирает привязку шифра к коллекции.
	UnlinkCipher(ctx context.Context, collectionID, cipherID string) error
}

type collectionRepo struct {
	db *gorm.DB
}

// NewCollectionRepository создаёт реализацию репозитория коллекций.
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepo) FindByOrg(ctx context.Context, orgID string) ([]model.Collection, error) {
	var cols []model.Collection
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).Find(&cols).Error; err != nil {
		return nil, err
	}
	return cols, nil
}

func (r *collectionRepo) AssignUser(ctx context.Context, userID, collectionID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.CollectionUser{UserID: userID, CollectionID: collectionID}).Error
}

func (r *collectionRepo) LinkCipher(ctx context.Context, collectionID, cipherID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.CollectionCipher{CollectionID: collectionID, CipherID: cipherID}).Error
}

func (r *collectionRepo) UnlinkCipher(ctx context.Context, collectionID, cipherID string) error {
	return r.db.WithContext(ctx).
		Where("collection_id = ? AND cipher_id = ?", collectionID, cipherID).
		Delete(&model.CollectionCipher{}).Error
}
