package repo

import (
	"VaultKeeper/internal/model"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CipherRepository — доступ к шифрам и производным от них выборкам.
type CipherRepository interface {
	// GetByID возвращает шифр по uuid. Отсутствие — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*model.Cipher, error)

	// Save всегда обновляет updated_at и делает upsert по первичному ключу.
	Save(ctx context.Context, c *model.Cipher) error

	// Delete удаляет шифр и все зависимые записи в одной транзакции,
	// строго в порядке: привязки к папкам, привязки к коллекциям,
	// метаданные вложений, сама строка шифра.
	Delete(ctx context.Context, cipherID string) error

	// FindVisibleByUser возвращает все шифры, видимые пользователю:
	// личные, либо организационные при членстве и (access_all, роли
	// Owner/Admin или явном допуске к коллекции с этим шифром).
	// Дубликатов нет даже при достижимости через несколько коллекций.
	FindVisibleByUser(ctx context.Context, userID string) ([]model.Cipher, error)

	// FindOwnedByUser — только личные шифры пользователя.
	FindOwnedByUser(ctx context.Context, userID string) ([]model.Cipher, error)

	// FindByOrg — все шифры организации.
	FindByOrg(ctx context.Context, orgID string) ([]model.Cipher, error)

	// FindByFolder — шифры, лежащие в папке.
	FindByFolder(ctx context.Context, folderID string) ([]model.Cipher, error)

	// GetFolderID — папка, в которой шифр лежит у данного пользователя,
	// либо nil, если привязки нет.
	GetFolderID(ctx context.Context, userID, cipherID string) (*string, error)

	// GetCollectionIDs — коллекции шифра, к которым пользователь допущен
	// (явный допуск, access_all или роль Owner/Admin). Пустой срез,
	// если допуска нет — это не ошибка.
	GetCollectionIDs(ctx context.Context, userID, cipherID string) ([]string, error)
}

type cipherRepo struct {
	db *gorm.DB
}

// NewCipherRepository создаёт реализацию репозитория шифров.
func NewCipherRepository(db *gorm.DB) CipherRepository {
	return &cipherRepo{db: db}
}

func (r *cipherRepo) GetByID(ctx context.Context, id string) (*model.Cipher, error) {
	var c model.Cipher
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cipherRepo) Save(ctx context.Context, c *model.Cipher) error {
	// updated_at трогаем всегда, независимо от изменённых полей
	c.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(c).Error
}

func (r *cipherRepo) Delete(ctx context.Context, cipherID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cipher_id = ?", cipherID).Delete(&model.FolderCipher{}).Error; err != nil {
			return fmt.Errorf("delete folder links: %w", err)
		}
		if err := tx.Where("cipher_id = ?", cipherID).Delete(&model.CollectionCipher{}).Error; err != nil {
			return fmt.Errorf("delete collection links: %w", err)
		}
		if err := tx.Where("cipher_id = ?", cipherID).Delete(&model.Attachment{}).Error; err != nil {
			return fmt.Errorf("delete attachments: %w", err)
		}
		if err := tx.Where("id = ?", cipherID).Delete(&model.Cipher{}).Error; err != nil {
			return fmt.Errorf("delete cipher: %w", err)
		}
		return nil
	})
}

func (r *cipherRepo) FindVisibleByUser(ctx context.Context, userID string) ([]model.Cipher, error) {
	var ciphers []model.Cipher
	err := r.db.WithContext(ctx).
		Table("ciphers").
		Select("DISTINCT ciphers.*").
		Joins("LEFT JOIN memberships ON memberships.org_id = ciphers.organization_id AND memberships.user_id = ?", userID).
		Joins("LEFT JOIN collection_ciphers ON collection_ciphers.cipher_id = ciphers.id").
		Joins("LEFT JOIN collection_users ON collection_users.collection_id = collection_ciphers.collection_id AND collection_users.user_id = ?", userID).
		Where("ciphers.user_id = ? OR (memberships.user_id IS NOT NULL AND (memberships.access_all = ? OR memberships.role <= ? OR collection_users.user_id IS NOT NULL))",
			userID, true, model.RoleAdmin).
		Find(&ciphers).Error
	if err != nil {
		return nil, err
	}
	return ciphers, nil
}

func (r *cipherRepo) FindOwnedByUser(ctx context.Context, userID string) ([]model.Cipher, error) {
	var ciphers []model.Cipher
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&ciphers).Error; err != nil {
		return nil, err
	}
	return ciphers, nil
}

func (r *cipherRepo) FindByOrg(ctx context.Context, orgID string) ([]model.Cipher, error) {
	var ciphers []model.Cipher
	if err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Find(&ciphers).Error; err != nil {
		return nil, err
	}
	return ciphers, nil
}

func (r *cipherRepo) FindByFolder(ctx context.Context, folderID string) ([]model.Cipher, error) {
	var ciphers []model.Cipher
	err := r.db.WithContext(ctx).
		Table("ciphers").
		Joins("JOIN folder_ciphers ON folder_ciphers.cipher_id = ciphers.id").
		Where("folder_ciphers.folder_id = ?", folderID).
		Find(&ciphers).Error
	if err != nil {
		return nil, err
	}
	return ciphers, nil
}

func (r *cipherRepo) GetFolderID(ctx context.Context, userID, cipherID string) (*string, error) {
	return folderIDFor(r.db.WithContext(ctx), userID, cipherID)
}

func (r *cipherRepo) GetCollectionIDs(ctx context.Context, userID, cipherID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Table("collection_ciphers").
		Joins("JOIN collections ON collections.id = collection_ciphers.collection_id").
		Joins("JOIN memberships ON memberships.org_id = collections.org_id AND memberships.user_id = ?", userID).
		Joins("LEFT JOIN collection_users ON collection_users.collection_id = collection_ciphers.collection_id AND collection_users.user_id = ?", userID).
		Where("collection_ciphers.cipher_id = ?", cipherID).
		Where("collection_users.user_id IS NOT NULL OR memberships.access_all = ? OR memberships.role <= ?", true, model.RoleAdmin).
		Distinct().
		Pluck("collection_ciphers.collection_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// folderIDFor находит папку пары (пользователь, шифр) через join с folders:
// привязка не хранит владельца, владелец определяется папкой.
func folderIDFor(db *gorm.DB, userID, cipherID string) (*string, error) {
	var folderID string
	err := db.
		Table("folder_ciphers").
		Joins("JOIN folders ON folders.id = folder_ciphers.folder_id").
		Where("folders.user_id = ? AND folder_ciphers.cipher_id = ?", userID, cipherID).
		Select("folder_ciphers.folder_id").
		Take(&folderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folderID, nil
}
