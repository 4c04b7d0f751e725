package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrPermissionDenied — у вызывающего нет прав на операцию.
// Состояние при этом не меняется.
var ErrPermissionDenied = errors.New("permission denied")

// AccessService отвечает на вопросы членства и доступа: кто какие шифры
// может читать и писать и через какие коллекции они видны.
// Отсутствие доступа выражается как false / пустой срез, не как ошибка:
// для вызывающих это окончательный ответ.
type AccessService struct {
	memberships repo.MembershipRepository
	ciphers     repo.CipherRepository
}

// NewAccessService создаёт резолвер доступа.
func NewAccessService(m repo.MembershipRepository, c repo.CipherRepository) *AccessService {
	return &AccessService{memberships: m, ciphers: c}
}

// HasBlanketAccess — установлен ли у членства флаг access_all.
func (s *AccessService) HasBlanketAccess(ctx context.Context, userID, orgID string) (bool, error) {
	m, err := s.memberships.Get(ctx, userID, orgID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return m.AccessAll, nil
}

// RoleOf возвращает роль пользователя в организации.
// ok=false — членства нет; это не ошибка.
func (s *AccessService) RoleOf(ctx context.Context, userID, orgID string) (model.OrgRole, bool, error) {
	m, err := s.memberships.Get(ctx, userID, orgID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return m.Role, true, nil
}

// IsAdminOrOwner — роль Owner или Admin.
func (s *AccessService) IsAdminOrOwner(ctx context.Context, userID, orgID string) (bool, error) {
	role, ok, err := s.RoleOf(ctx, userID, orgID)
	if err != nil || !ok {
		return false, err
	}
	return role <= model.RoleAdmin, nil
}

// CanWrite — может ли пользователь изменять шифр. Личный шифр — только
// его владелец. Шифр организации — только членство с access_all:
// доступ на запись через конкретные коллекции здесь сознательно
// не проверяется, это известный пробел текущей модели прав.
func (s *AccessService) CanWrite(ctx context.Context, userID string, c *model.Cipher) (bool, error) {
	if c.UserID != nil {
		return c.OwnedBy(userID), nil
	}
	if c.OrganizationID != nil {
		return s.HasBlanketAccess(ctx, userID, *c.OrganizationID)
	}
	return false, nil
}

// CanRead совпадает с CanWrite: доступ только на чтение через членство
// в коллекции ещё не реализован.
func (s *AccessService) CanRead(ctx context.Context, userID string, c *model.Cipher) (bool, error) {
	return s.CanWrite(ctx, userID, c)
}

// FindVisible — все шифры, видимые пользователю в списках:
// личные плюс организационные, достижимые через членство.
func (s *AccessService) FindVisible(ctx context.Context, userID string) ([]model.Cipher, error) {
	return s.ciphers.FindVisibleByUser(ctx, userID)
}

// CollectionsFor — коллекции собственной организации шифра, через которые
// он виден пользователю. Для организационного шифра без членства
// вызывающего — пустой срез, не ошибка.
func (s *AccessService) CollectionsFor(ctx context.Context, userID string, c *model.Cipher) ([]string, error) {
	return s.ciphers.GetCollectionIDs(ctx, userID, c.ID)
}
