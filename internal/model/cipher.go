package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Типы шифров. Значения совпадают с кодами клиентского протокола.
const (
	CipherTypeLogin      = 1
	CipherTypeSecureNote = 2
	CipherTypeCard       = 3
	CipherTypeIdentity   = 4
)

// ErrCipherOwner — нарушено правило владения: у шифра должен быть
// ровно один владелец, либо пользователь, либо организация.
var ErrCipherOwner = errors.New("cipher must be owned by exactly one of user or organization")

// Cipher — зашифрованный элемент хранилища. Содержимое (Data, Fields,
// Notes) непрозрачно для сервера: хранится и отдаётся как есть.
type Cipher struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time

	// Ровно одно из двух полей заполнено: личный шифр или шифр организации.
	// Владелец назначается при создании и больше не меняется.
	UserID         *string `gorm:"type:uuid;index"`
	OrganizationID *string `gorm:"type:uuid;index"`

	Type   int    `gorm:"not null"`
	Name   string `gorm:"not null"`
	Notes  *string
	Fields *string

	Data string

	Favorite bool `gorm:"not null;default:false"`
}

// NewCipher создаёт шифр с новым uuid и проставленным владельцем.
// Оба владельца или ни одного — ошибка ErrCipherOwner.
func NewCipher(cipherType int, name string, userID, orgID *string) (*Cipher, error) {
	if (userID == nil) == (orgID == nil) {
		return nil, ErrCipherOwner
	}
	now := time.Now().UTC()
	return &Cipher{
		ID:             uuid.NewString(),
		CreatedAt:      now,
		UpdatedAt:      now,
		UserID:         userID,
		OrganizationID: orgID,
		Type:           cipherType,
		Name:           name,
		Favorite:       false,
		Data:           "{}",
	}, nil
}

// OwnedBy — личный шифр указанного пользователя.
func (c *Cipher) OwnedBy(userID string) bool {
	return c.UserID != nil && *c.UserID == userID
}

// TypeAlias возвращает имя типоспецифичного поля сериализации.
func (c *Cipher) TypeAlias() string {
	switch c.Type {
	case CipherTypeLogin:
		return "Login"
	case CipherTypeSecureNote:
		return "SecureNote"
	case CipherTypeCard:
		return "Card"
	case CipherTypeIdentity:
		return "Identity"
	}
	return ""
}
