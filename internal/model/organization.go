package model

import "time"

// Organization — граница тенанта: пользователи организации делятся
// шифрами через коллекции.
type Organization struct {
	ID   string `gorm:"primaryKey;type:uuid"`
	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// OrgRole — роль участника в организации. Порядок значим:
// чем больше число, тем меньше прав.
type OrgRole int

const (
	RoleOwner OrgRole = iota
	RoleAdmin
	RoleManager
	RoleMember
)

// Membership — членство пользователя в организации.
// AccessAll даёт видимость всех шифров организации без привязки к коллекциям.
type Membership struct {
	UserID string `gorm:"primaryKey;type:uuid"`
	OrgID  string `gorm:"primaryKey;type:uuid"`

	Role      OrgRole `gorm:"not null;default:3"`
	AccessAll bool    `gorm:"not null;default:false"`
}

// IsAdminOrOwner — true для Owner и Admin.
func (m *Membership) IsAdminOrOwner() bool {
	return m.Role <= RoleAdmin
}

// Collection — именованная группа шифров внутри организации.
type Collection struct {
	ID    string `gorm:"primaryKey;type:uuid"`
	OrgID string `gorm:"not null;type:uuid;index"`
	Name  string `gorm:"not null"`
}

// CollectionUser — явный допуск пользователя к коллекции.
type CollectionUser struct {
	UserID       string `gorm:"primaryKey;type:uuid"`
	CollectionID string `gorm:"primaryKey;type:uuid"`
}

// CollectionCipher — связь many-to-many шифра с коллекциями его организации.
type CollectionCipher struct {
	CollectionID string `gorm:"primaryKey;type:uuid"`
	CipherID     string `gorm:"primaryKey;type:uuid"`
}
