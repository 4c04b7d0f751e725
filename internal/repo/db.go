package repo

import (
	"VaultKeeper/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB открывает подключение к PostgreSQL и применяет автомиграции.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate применяет миграции всех моделей ядра.
// Связующие таблицы (folder_ciphers, collection_ciphers, collection_users)
// не имеют каскадных ограничений: порядок удаления — ответственность кода.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Membership{},
		&model.Collection{},
		&model.CollectionUser{},
		&model.CollectionCipher{},
		&model.Cipher{},
		&model.Folder{},
		&model.FolderCipher{},
		&model.Attachment{},
		&model.Event{},
	)
}
