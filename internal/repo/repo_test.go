package repo

import (
	"VaultKeeper/internal/model"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов
// репозиториев. Имя базы уникально на тест, чтобы состояние не протекало
// между тестами; cache=shared нужен, чтобы пул соединений gorm видел
// одну и ту же базу.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

// mkPersonalCipher создаёт личный шифр пользователя.
func mkPersonalCipher(t *testing.T, db *gorm.DB, userID, name string) *model.Cipher {
	t.Helper()
	c, err := model.NewCipher(model.CipherTypeLogin, name, strPtr(userID), nil)
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create cipher: %v", err)
	}
	return c
}

// mkOrgCipher создаёт шифр организации.
func mkOrgCipher(t *testing.T, db *gorm.DB, orgID, name string) *model.Cipher {
	t.Helper()
	c, err := model.NewCipher(model.CipherTypeSecureNote, name, nil, strPtr(orgID))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create cipher: %v", err)
	}
	return c
}

// mkMembership создаёт членство пользователя в организации.
func mkMembership(t *testing.T, db *gorm.DB, userID, orgID string, role model.OrgRole, accessAll bool) {
	t.Helper()
	m := &model.Membership{UserID: userID, OrgID: orgID, Role: role, AccessAll: accessAll}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create membership: %v", err)
	}
}

// mkCollection создаёт коллекцию организации.
func mkCollection(t *testing.T, db *gorm.DB, orgID, name string) *model.Collection {
	t.Helper()
	c := &model.Collection{ID: uuid.NewString(), OrgID: orgID, Name: name}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create collection: %v", err)
	}
	return c
}

// mkFolder создаёт папку пользователя.
func mkFolder(t *testing.T, db *gorm.DB, userID, name string) *model.Folder {
	t.Helper()
	f := model.NewFolder(userID, name)
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("create folder: %v", err)
	}
	return f
}
