package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mychesstour/chesstour-api/models"
)

var ErrOrgMemberNotFound = errors.New("organization member not found")

// OrgMemberRepository отвечает на единственный вопрос: какая роль у
// пользователя внутри организации-организатора.
type OrgMemberRepository interface {
	GetRole(ctx context.Context, userID, organizerID string) (models.OrgRole, error)
}

type postgresOrgMemberRepository struct {
	db *sql.DB
}

func NewPostgresOrgMemberRepository(db *sql.DB) OrgMemberRepository {
	return &postgresOrgMemberRepository{db: db}
}

func (r *postgresOrgMemberRepository) GetRole(ctx context.Context, userID, organizerID string) (models.OrgRole, error) {
	q := `
		SELECT role
		FROM organizer_members
		WHERE user_id = $1 AND organizer_id = $2`

	var role models.OrgRole
	err := r.db.QueryRowContext(ctx, q, userID, organizerID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrOrgMemberNotFound
		}
		return "", err
	}
	return role, nil
}
