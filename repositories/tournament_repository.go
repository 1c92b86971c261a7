package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/query"
)

// TournamentRepository — абстрактное хранилище турниров. Движку запросов
// нужна ровно эта поверхность: выборка с проекцией, предикаты (равенство,
// членство, OR-комбинации, диапазоны), сортировка по нескольким колонкам
// и лимит строк. Любой бэкенд с такими возможностями подходит — Postgres
// в проде, in-memory в тестах.
type TournamentRepository interface {
	List(ctx context.Context, spec query.ListSpec) ([]models.Tournament, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) List(ctx context.Context, spec query.ListSpec) ([]models.Tournament, error) {
	builder := &sqlBuilder{}

	conditions := make([]string, 0, len(spec.Where))
	for _, pred := range spec.Where {
		part, err := builder.predicate(pred)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, part)
	}

	// Организатор отдаётся одним JSON-артефактом: NULL при отсутствии FK,
	// объект при наличии. Нормализация формы — забота вызывающего кода.
	q := `
		SELECT
			t.id, t.name, t.venue_name, t.venue_state,
			t.start_date::text, t.end_date::text, t.registration_deadline,
			t.format, t.time_control, t.is_fide_rated, t.is_mcf_rated,
			t.entry_fees, t.max_participants, t.poster_key, t.status,
			t.organizer_id, t.created_at,
			CASE WHEN o.id IS NULL THEN NULL
			     ELSE json_build_object(
			         'id', o.id,
			         'organization_name', o.organization_name,
			         'links', o.links)
			END AS organizer
		FROM tournaments t
		LEFT JOIN organizer_profiles o ON o.id = t.organizer_id`

	if len(conditions) > 0 {
		q += " WHERE " + strings.Join(conditions, " AND ")
	}

	if len(spec.OrderBy) > 0 {
		orderClause, err := builder.orderBy(spec.OrderBy)
		if err != nil {
			return nil, err
		}
		q += " ORDER BY " + orderClause
	}

	if spec.Limit > 0 {
		q += " LIMIT " + builder.placeholder(spec.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, builder.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var (
			t               models.Tournament
			formatJSON      []byte
			timeControlJSON []byte
			entryFeesJSON   []byte
			organizerJSON   []byte
		)
		if scanErr := rows.Scan(
			&t.ID, &t.Name, &t.VenueName, &t.VenueState,
			&t.StartDate, &t.EndDate, &t.RegistrationDeadline,
			&formatJSON, &timeControlJSON, &t.IsFIDERated, &t.IsMCFRated,
			&entryFeesJSON, &t.MaxParticipants, &t.PosterKey, &t.Status,
			&t.OrganizerID, &t.CreatedAt,
			&organizerJSON,
		); scanErr != nil {
			return nil, scanErr
		}

		if err := json.Unmarshal(formatJSON, &t.Format); err != nil {
			return nil, fmt.Errorf("failed to decode tournament format: %w", err)
		}
		if len(timeControlJSON) > 0 {
			if err := json.Unmarshal(timeControlJSON, &t.TimeControl); err != nil {
				return nil, fmt.Errorf("failed to decode time control: %w", err)
			}
		}
		if len(entryFeesJSON) > 0 {
			if err := json.Unmarshal(entryFeesJSON, &t.EntryFees); err != nil {
				return nil, fmt.Errorf("failed to decode entry fees: %w", err)
			}
		}
		t.RawOrganizer = organizerJSON

		tournaments = append(tournaments, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tournaments, nil
}
