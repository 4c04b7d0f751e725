package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// Моки репозиториев для тестов сервисного слоя.

type mockMembershipRepo struct{ mock.Mock }

func (m *mockMembershipRepo) Get(ctx context.Context, userID, orgID string) (*model.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if v, ok := args.Get(0).(*model.Membership); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMembershipRepo) Save(ctx context.Context, ms *model.Membership) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

var _ repo.MembershipRepository = (*mockMembershipRepo)(nil)

type mockCipherRepo struct{ mock.Mock }

func (m *mockCipherRepo) GetByID(ctx context.Context, id string) (*model.Cipher, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCipherRepo) Save(ctx context.Context, c *model.Cipher) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *mockCipherRepo) Delete(ctx context.Context, cipherID string) error {
	args := m.Called(ctx, cipherID)
	return args.Error(0)
}
func (m *mockCipherRepo) FindVisibleByUser(ctx context.Context, userID string) ([]model.Cipher, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCipherRepo) FindOwnedByUser(ctx context.Context, userID string) ([]model.Cipher, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCipherRepo) FindByOrg(ctx context.Context, orgID string) ([]model.Cipher, error) {
	args := m.Called(ctx, orgID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCipherRepo) FindByFolder(ctx context.Context, folderID string) ([]model.Cipher, error) {
	args := m.Called(ctx, folderID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCipherRepo) GetFolderID(ctx context.Context, userID, cipherID string) (*string, error) {
	args := m.Called(ctx, userID, cipherID)
	if v, ok := args.Get(0).(*string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCipherRepo) GetCollectionIDs(ctx context.Context, userID, cipherID string) ([]string, error) {
	args := m.Called(ctx, userID, cipherID)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.CipherRepository = (*mockCipherRepo)(nil)

type mockFolderRepo struct{ mock.Mock }

func (m *mockFolderRepo) GetByID(ctx context.Context, id string) (*model.Folder, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Folder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFolderRepo) Create(ctx context.Context, f *model.Folder) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}
func (m *mockFolderRepo) ListByUser(ctx context.Context, userID string) ([]model.Folder, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Folder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFolderRepo) MoveCipher(ctx context.Context, userID, cipherID string, target *string) error {
	args := m.Called(ctx, userID, cipherID, target)
	return args.Error(0)
}

var _ repo.FolderRepository = (*mockFolderRepo)(nil)

type mockAttachmentRepo struct{ mock.Mock }

func (m *mockAttachmentRepo) Create(ctx context.Context, a *model.Attachment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *mockAttachmentRepo) FindByCipher(ctx context.Context, cipherID string) ([]model.Attachment, error) {
	args := m.Called(ctx, cipherID)
	if v, ok := args.Get(0).([]model.Attachment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAttachmentRepo) DeleteAllByCipher(ctx context.Context, cipherID string) error {
	args := m.Called(ctx, cipherID)
	return args.Error(0)
}

var _ repo.AttachmentRepository = (*mockAttachmentRepo)(nil)

type mockCollectionRepo struct{ mock.Mock }

func (m *mockCollectionRepo) Create(ctx context.Context, c *model.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *mockCollectionRepo) FindByOrg(ctx context.Context, orgID string) ([]model.Collection, error) {
	args := m.Called(ctx, orgID)
	if v, ok := args.Get(0).([]model.Collection); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCollectionRepo) AssignUser(ctx context.Context, userID, collectionID string) error {
	args := m.Called(ctx, userID, collectionID)
	return args.Error(0)
}
func (m *mockCollectionRepo) LinkCipher(ctx context.Context, collectionID, cipherID string) error {
	args := m.Called(ctx, collectionID, cipherID)
	return args.Error(0)
}
func (m *mockCollectionRepo) UnlinkCipher(ctx context.Context, collectionID, cipherID string) error {
	args := m.Called(ctx, collectionID, cipherID)
	return args.Error(0)
}

var _ repo.CollectionRepository = (*mockCollectionRepo)(nil)

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Upsert(ctx context.Context, e *model.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
func (m *mockEventRepo) FindByOrganization(ctx context.Context, orgID string, start, end time.Time) ([]model.Event, error) {
	args := m.Called(ctx, orgID, start, end)
	if v, ok := args.Get(0).([]model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEventRepo) FindByCipher(ctx context.Context, cipherID string, start, end time.Time) ([]model.Event, error) {
	args := m.Called(ctx, cipherID, start, end)
	if v, ok := args.Get(0).([]model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.EventRepository = (*mockEventRepo)(nil)

// хелперы
func ptrStr(s string) *string { return &s }
