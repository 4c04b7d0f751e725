package handlers_test

import (
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/handlers"
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Лёгкие моки репозиториев: хендлеры тестируются через реальный роутер
// и реальные сервисы поверх моков.

type hMockCipherRepo struct{ mock.Mock }

func (m *hMockCipherRepo) GetByID(ctx context.Context, id string) (*model.Cipher, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCipherRepo) Save(ctx context.Context, c *model.Cipher) error {
	return m.Called(ctx, c).Error(0)
}
func (m *hMockCipherRepo) Delete(ctx context.Context, cipherID string) error {
	return m.Called(ctx, cipherID).Error(0)
}
func (m *hMockCipherRepo) FindVisibleByUser(ctx context.Context, userID string) ([]model.Cipher, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCipherRepo) FindOwnedByUser(ctx context.Context, userID string) ([]model.Cipher, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCipherRepo) FindByOrg(ctx context.Context, orgID string) ([]model.Cipher, error) {
	args := m.Called(ctx, orgID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCipherRepo) FindByFolder(ctx context.Context, folderID string) ([]model.Cipher, error) {
	args := m.Called(ctx, folderID)
	if v, ok := args.Get(0).([]model.Cipher); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCipherRepo) GetFolderID(ctx context.Context, userID, cipherID string) (*string, error) {
	args := m.Called(ctx, userID, cipherID)
	if v, ok := args.Get(0).(*string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCipherRepo) GetCollectionIDs(ctx context.Context, userID, cipherID string) ([]string, error) {
	args := m.Called(ctx, userID, cipherID)
	if v, ok := args.Get(0).([]string); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.CipherRepository = (*hMockCipherRepo)(nil)

type hMockMembershipRepo struct{ mock.Mock }

func (m *hMockMembershipRepo) Get(ctx context.Context, userID, orgID string) (*model.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if v, ok := args.Get(0).(*model.Membership); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockMembershipRepo) Save(ctx context.Context, ms *model.Membership) error {
	return m.Called(ctx, ms).Error(0)
}

var _ repo.MembershipRepository = (*hMockMembershipRepo)(nil)

type hMockFolderRepo struct{ mock.Mock }

func (m *hMockFolderRepo) GetByID(ctx context.Context, id string) (*model.Folder, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Folder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockFolderRepo) Create(ctx context.Context, f *model.Folder) error {
	return m.Called(ctx, f).Error(0)
}
func (m *hMockFolderRepo) ListByUser(ctx context.Context, userID string) ([]model.Folder, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Folder); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockFolderRepo) MoveCipher(ctx context.Context, userID, cipherID string, target *string) error {
	return m.Called(ctx, userID, cipherID, target).Error(0)
}

var _ repo.FolderRepository = (*hMockFolderRepo)(nil)

type hMockCollectionRepo struct{ mock.Mock }

func (m *hMockCollectionRepo) Create(ctx context.Context, c *model.Collection) error {
	return m.Called(ctx, c).Error(0)
}
func (m *hMockCollectionRepo) FindByOrg(ctx context.Context, orgID string) ([]model.Collection, error) {
	args := m.Called(ctx, orgID)
	if v, ok := args.Get(0).([]model.Collection); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockCollectionRepo) AssignUser(ctx context.Context, userID, collectionID string) error {
	return m.Called(ctx, userID, collectionID).Error(0)
}
func (m *hMockCollectionRepo) LinkCipher(ctx context.Context, collectionID, cipherID string) error {
	return m.Called(ctx, collectionID, cipherID).Error(0)
}
func (m *hMockCollectionRepo) UnlinkCipher(ctx context.Context, collectionID, cipherID string) error {
	return m.Called(ctx, collectionID, cipherID).Error(0)
}

var _ repo.CollectionRepository = (*hMockCollectionRepo)(nil)

type hMockAttachmentRepo struct{ mock.Mock }

func (m *hMockAttachmentRepo) Create(ctx context.Context, a *model.Attachment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *hMockAttachmentRepo) FindByCipher(ctx context.Context, cipherID string) ([]model.Attachment, error) {
	args := m.Called(ctx, cipherID)
	if v, ok := args.Get(0).([]model.Attachment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockAttachmentRepo) DeleteAllByCipher(ctx context.Context, cipherID string) error {
	return m.Called(ctx, cipherID).Error(0)
}

var _ repo.AttachmentRepository = (*hMockAttachmentRepo)(nil)

type hMockEventRepo struct{ mock.Mock }

func (m *hMockEventRepo) Upsert(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}
func (m *hMockEventRepo) FindByOrganization(ctx context.Context, orgID string, start, end time.Time) ([]model.Event, error) {
	args := m.Called(ctx, orgID, start, end)
	if v, ok := args.Get(0).([]model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockEventRepo) FindByCipher(ctx context.Context, cipherID string, start, end time.Time) ([]model.Event, error) {
	args := m.Called(ctx, cipherID, start, end)
	if v, ok := args.Get(0).([]model.Event); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.EventRepository = (*hMockEventRepo)(nil)

type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

// testEnv — роутер и моки для одного теста.
type testEnv struct {
	router      http.Handler
	cfg         *config.Config
	ciphers     *hMockCipherRepo
	memberships *hMockMembershipRepo
	folders     *hMockFolderRepo
	collections *hMockCollectionRepo
	attachments *hMockAttachmentRepo
	events      *hMockEventRepo
	users       *hMockUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{AuthSecret: "test-secret"}
	logger := zap.NewNop().Sugar()

	e := &testEnv{
		cfg:         cfg,
		ciphers:     &hMockCipherRepo{},
		memberships: &hMockMembershipRepo{},
		folders:     &hMockFolderRepo{},
		collections: &hMockCollectionRepo{},
		attachments: &hMockAttachmentRepo{},
		events:      &hMockEventRepo{},
		users:       &hMockUserRepo{},
	}

	accessSvc := service.NewAccessService(e.memberships, e.ciphers)
	userSvc := service.NewUserService(e.users)
	cipherSvc := service.NewCipherService(e.ciphers, e.folders, e.attachments, accessSvc)
	folderSvc := service.NewFolderService(e.folders)
	collectionSvc := service.NewCollectionService(e.collections, e.ciphers, accessSvc)
	orgSvc := service.NewOrgService(e.memberships, accessSvc)
	eventSvc := service.NewEventService(e.events, e.ciphers)

	h := handlers.NewHandler(userSvc, cipherSvc, folderSvc, collectionSvc, orgSvc, eventSvc, accessSvc, logger, cfg)
	e.router = h.Router
	return e
}

func addAuth(t *testing.T, req *http.Request, userID, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func ptrStr(s string) *string { return &s }
