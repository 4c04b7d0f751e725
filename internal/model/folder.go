package model

import (
	"time"

	"github.com/google/uuid"
)

// Folder — личная папка пользователя. Папки никогда не разделяются
// между пользователями и не связаны с организациями.
type Folder struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID string `gorm:"not null;type:uuid;index"`
	Name   string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// NewFolder создаёт папку пользователя с новым uuid.
func NewFolder(userID, name string) *Folder {
	return &Folder{ID: uuid.NewString(), UserID: userID, Name: name}
}

// FolderCipher — привязка шифра к папке. Для пары (пользователь, шифр)
// существует не более одной такой записи: шифр лежит максимум в одной
// папке каждого пользователя.
type FolderCipher struct {
	FolderID string `gorm:"primaryKey;type:uuid"`
	CipherID string `gorm:"primaryKey;type:uuid"`
}
