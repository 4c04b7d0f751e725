package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollectionService — коллекции организаций: создание, допуски
// пользователей и привязки шифров. Управление коллекциями доступно
// только Owner/Admin организации.
type CollectionService struct {
	collections repo.CollectionRepository
	ciphers     repo.CipherRepository
	access      *AccessService
}

// NewCollectionService создаёт сервис коллекций.
func NewCollectionService(c repo.CollectionRepository, ciphers repo.CipherRepository, access *AccessService) *CollectionService {
	return &CollectionService{collections: c, ciphers: ciphers, access: access}
}

// Create создаёт коллекцию организации от имени её Owner/Admin.
func (s *CollectionService) Create(ctx context.Context, callerID, orgID, name string) (*model.Collection, error) {
	admin, err := s.access.IsAdminOrOwner(ctx, callerID, orgID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrPermissionDenied
	}
	col := &model.Collection{ID: uuid.NewString(), OrgID: orgID, Name: name}
	if err := s.collections.Create(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// ListByOrg — коллекции организации. Доступно любому её участнику.
func (s *CollectionService) ListByOrg(ctx context.Context, callerID, orgID string) ([]model.Collection, error) {
	_, member, err := s.access.RoleOf(ctx, callerID, orgID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrPermissionDenied
	}
	return s.collections.FindByOrg(ctx, orgID)
}

// AssignUser выдаёт пользователю явный допуск к коллекции организации.
// Коллекция должна принадлежать указанной организации.
func (s *CollectionService) AssignUser(ctx context.Context, callerID, orgID, collectionID, userID string) error {
	admin, err := s.access.IsAdminOrOwner(ctx, callerID, orgID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrPermissionDenied
	}
	if err := s.collectionInOrg(ctx, orgID, collectionID); err != nil {
		return err
	}
	return s.collections.AssignUser(ctx, userID, collectionID)
}

// LinkCipher привязывает шифр к коллекции его организации.
func (s *CollectionService) LinkCipher(ctx context.Context, callerID, cipherID, collectionID string) error {
	c, err := s.writableOrgCipher(ctx, callerID, cipherID)
	if err != nil {
		return err
	}
	if err := s.collectionInOrg(ctx, *c.OrganizationID, collectionID); err != nil {
		return err
	}
	return s.collections.LinkCipher(ctx, collectionID, cipherID)
}

// UnlinkCipher убирает привязку шифра к коллекции.
func (s *CollectionService) UnlinkCipher(ctx context.Context, callerID, cipherID, collectionID string) error {
	c, err := s.writableOrgCipher(ctx, callerID, cipherID)
	if err != nil {
		return err
	}
	if err := s.collectionInOrg(ctx, *c.OrganizationID, collectionID); err != nil {
		return err
	}
	return s.collections.UnlinkCipher(ctx, collectionID, cipherID)
}

// writableOrgCipher — шифр организации, доступный вызывающему на запись.
// Личный шифр к коллекциям не привязывается.
func (s *CollectionService) writableOrgCipher(ctx context.Context, callerID, cipherID string) (*model.Cipher, error) {
	c, err := s.ciphers.GetByID(ctx, cipherID)
	if err != nil {
		return nil, err
	}
	if c.OrganizationID == nil {
		return nil, ErrPermissionDenied
	}
	ok, err := s.access.CanWrite(ctx, callerID, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPermissionDenied
	}
	return c, nil
}

func (s *CollectionService) collectionInOrg(ctx context.Context, orgID, collectionID string) error {
	cols, err := s.collections.FindByOrg(ctx, orgID)
	if err != nil {
		return err
	}
	for _, col := range cols {
		if col.ID == collectionID {
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}
