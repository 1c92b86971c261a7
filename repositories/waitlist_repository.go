package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/mychesstour/chesstour-api/models"
)

var ErrWaitlistDuplicate = errors.New("email already on the waitlist")

type WaitlistRepository interface {
	Add(ctx context.Context, entry *models.WaitlistEntry) error
}

type postgresWaitlistRepository struct {
	db *sql.DB
}

func NewPostgresWaitlistRepository(db *sql.DB) WaitlistRepository {
	return &postgresWaitlistRepository{db: db}
}

func (r *postgresWaitlistRepository) Add(ctx context.Context, entry *models.WaitlistEntry) error {
	q := `
		INSERT INTO waitlist (id, email)
		VALUES ($1, $2)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, q, entry.ID, entry.Email).Scan(&entry.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrWaitlistDuplicate
		}
		return err
	}
	return nil
}
