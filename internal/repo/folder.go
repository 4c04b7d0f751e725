package repo

import (
	"VaultKeeper/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNoFolderMapping — попытка убрать привязку к папке, когда строки
// привязки нет, хотя текущее состояние обещало её наличие. Это рассинхрон
// между чтением текущей папки и удалением, его нельзя молча проглатывать.
var ErrNoFolderMapping = errors.New("cannot remove a folder mapping that does not exist")

// FolderRepository — личные папки и привязки шифров к ним.
type FolderRepository interface {
	// GetByID возвращает папку по uuid. Отсутствие — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*model.Folder, error)

	// Create сохраняет новую папку.
	Create(ctx context.Context, f *model.Folder) error

	// ListByUser — все папки пользователя.
	ListByUser(ctx context.Context, userID string) ([]model.Folder, error)

	// MoveCipher переводит привязку (пользователь, шифр) в целевое
	// состояние: target == nil убирает шифр из папки, иначе кладёт в неё.
	// Четыре перехода: нет→нет и F→F — no-op; нет→F — создание привязки;
	// F→G — удаление старой и создание новой; F→нет — удаление.
	// Удаление при отсутствующей строке в переходе F→нет возвращает
	// ErrNoFolderMapping. Вся операция — одна транзакция.
	MoveCipher(ctx context.Context, userID, cipherID string, target *string) error
}

type folderRepo struct {
	db *gorm.DB
}

// NewFolderRepository создаёт реализацию репозитория папок.
func NewFolderRepository(db *gorm.DB) FolderRepository {
	return &folderRepo{db: db}
}

func (r *folderRepo) GetByID(ctx context.Context, id string) (*model.Folder, error) {
	var f model.Folder
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *folderRepo) Create(ctx context.Context, f *model.Folder) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *folderRepo) ListByUser(ctx context.Context, userID string) ([]model.Folder, error) {
	var folders []model.Folder
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepo) MoveCipher(ctx context.Context, userID, cipherID string, target *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := folderIDFor(tx, userID, cipherID)
		if err != nil {
			return err
		}
		return applyFolderTransition(tx, current, cipherID, target)
	})
}

// applyFolderTransition выполняет переход привязки из текущего состояния
// в целевое. current — прочитанная ранее текущая папка; между чтением и
// удалением строка могла исчезнуть, поэтому удаление проверяет
// RowsAffected.
func applyFolderTransition(tx *gorm.DB, current *string, cipherID string, target *string) error {
	switch {
	case current == nil && target == nil:
		return nil // нечего делать
	case current == nil:
		return tx.Create(&model.FolderCipher{FolderID: *target, CipherID: cipherID}).Error
	case target == nil:
		res := tx.Where("folder_id = ? AND cipher_id = ?", *current, cipherID).
			Delete(&model.FolderCipher{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoFolderMapping
		}
		return nil
	case *current == *target:
		return nil // нечего делать
	default:
		// смена папки: удаляем старую привязку, создаём новую.
		// Исчезнувшая между чтением и удалением строка не мешает
		// создать новую привязку.
		if err := tx.Where("folder_id = ? AND cipher_id = ?", *current, cipherID).
			Delete(&model.FolderCipher{}).Error; err != nil {
			return err
		}
		return tx.Create(&model.FolderCipher{FolderID: *target, CipherID: cipherID}).Error
	}
}
