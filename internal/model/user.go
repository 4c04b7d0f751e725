package model

import "time"

// User — учётная запись. Идентичность подтверждает слой аутентификации,
// ядро авторизации получает уже проверенный ID.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
