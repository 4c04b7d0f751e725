package repo

import (
	"VaultKeeper/internal/model"
	"context"

	"gorm.io/gorm"
)

// AttachmentRepository — метаданные вложений шифров.
type AttachmentRepository interface {
	Create(ctx context.Context, a *model.Attachment) error

	// FindByCipher — все вложения шифра.
	FindByCipher(ctx context.Context, cipherID string) ([]model.Attachment, error)

	// DeleteAllByCipher удаляет метаданные всех вложений шифра.
	DeleteAllByCipher(ctx context.Context, cipherID string) error
}

type attachmentRepo struct {
	db *gorm.DB
}

// NewAttachmentRepository создаёт реализацию репозитория вложений.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, a *model.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attachmentRepo) FindByCipher(ctx context.Context, cipherID string) ([]model.Attachment, error) {
	var list []model.Attachment
	if err := r.db.WithContext(ctx).Where("cipher_id = ?", cipherID).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *attachmentRepo) DeleteAllByCipher(ctx context.Context, cipherID string) error {
	return r.db.WithContext(ctx).Where("cipher_id = ?", cipherID).Delete(&model.Attachment{}).Error
}
