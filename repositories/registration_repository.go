package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/mychesstour/chesstour-api/models"
)

// RegistrationRepository — read-only доступ к заявкам участников.
// Записи создаются write-путями вне этого сервиса.
type RegistrationRepository interface {
	// CountConfirmedByTournament группирует подтверждённые заявки по турнирам.
	// Турниры без подтверждённых заявок в карте отсутствуют — читать как 0.
	CountConfirmedByTournament(ctx context.Context, tournamentIDs []string) (map[string]int, error)
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) CountConfirmedByTournament(ctx context.Context, tournamentIDs []string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(tournamentIDs) == 0 {
		return counts, nil
	}

	q := `
		SELECT tournament_id, COUNT(*)
		FROM registrations
		WHERE tournament_id = ANY($1) AND status = $2
		GROUP BY tournament_id`

	rows, err := r.db.QueryContext(ctx, q, pq.Array(tournamentIDs), models.RegistrationConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			count int
		)
		if scanErr := rows.Scan(&id, &count); scanErr != nil {
			return nil, scanErr
		}
		counts[id] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
