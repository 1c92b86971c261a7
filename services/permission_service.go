package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/repositories"
)

// PermissionService проверяет роль пользователя внутри организации.
// Иерархия: member < admin < owner. Листинг турниров публичен и этим
// сервисом не пользуется — он нужен организаторским операциям, которые
// доверяют уже аутентифицированному вызывающему.
type PermissionService struct {
	orgMembers repositories.OrgMemberRepository
}

func NewPermissionService(orgMembers repositories.OrgMemberRepository) *PermissionService {
	return &PermissionService{orgMembers: orgMembers}
}

// GetOrgRole возвращает роль пользователя в организации или пустую роль,
// если он не состоит в ней.
func (s *PermissionService) GetOrgRole(ctx context.Context, userID, organizerID string) (models.OrgRole, error) {
	role, err := s.orgMembers.GetRole(ctx, userID, organizerID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrgMemberNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up org role: %w", err)
	}
	return role, nil
}

// RequireOrgRole завершается ошибкой, если роль пользователя ниже минимума.
func (s *PermissionService) RequireOrgRole(ctx context.Context, userID, organizerID string, min models.OrgRole) error {
	role, err := s.GetOrgRole(ctx, userID, organizerID)
	if err != nil {
		return err
	}
	if role == "" || !role.Meets(min) {
		return ErrInsufficientPermissions
	}
	return nil
}
