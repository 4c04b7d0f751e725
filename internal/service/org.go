package service

import (
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"context"
)

// OrgService — управление членствами в организации.
type OrgService struct {
	memberships repo.MembershipRepository
	access      *AccessService
}

// NewOrgService создаёт сервис организаций.
func NewOrgService(m repo.MembershipRepository, access *AccessService) *OrgService {
	return &OrgService{memberships: m, access: access}
}

// SetMembership создаёт или обновляет членство пользователя от имени
// Owner/Admin организации. Upsert по составному ключу (user, org).
func (s *OrgService) SetMembership(ctx context.Context, callerID, orgID, userID string, role model.OrgRole, accessAll bool) error {
	admin, err := s.access.IsAdminOrOwner(ctx, callerID, orgID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrPermissionDenied
	}
	return s.memberships.Save(ctx, &model.Membership{
		UserID:    userID,
		OrgID:     orgID,
		Role:      role,
		AccessAll: accessAll,
	})
}
