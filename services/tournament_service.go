package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/query"
	"github.com/mychesstour/chesstour-api/repositories"
	"github.com/mychesstour/chesstour-api/storage"
)

// TournamentListItem — публичная форма турнира в листинге: venue_state
// переименована в state, организатор сплющен до объекта-или-null,
// current_participants подставлен из агрегатора, poster_key превращён в URL.
// Сырые FK и артефакты join'а наружу не попадают.
type TournamentListItem struct {
	ID                   string                  `json:"id"`
	Name                 string                  `json:"name"`
	VenueName            string                  `json:"venue_name"`
	State                string                  `json:"state"`
	StartDate            string                  `json:"start_date"`
	EndDate              string                  `json:"end_date"`
	RegistrationDeadline time.Time               `json:"registration_deadline"`
	Format               models.TournamentFormat `json:"format"`
	TimeControl          *models.TimeControl     `json:"time_control,omitempty"`
	IsFIDERated          bool                    `json:"is_fide_rated"`
	IsMCFRated           bool                    `json:"is_mcf_rated"`
	EntryFees            models.EntryFees        `json:"entry_fees"`
	MaxParticipants      int                     `json:"max_participants"`
	CurrentParticipants  int                     `json:"current_participants"`
	PosterURL            *string                 `json:"poster_url"`
	Status               models.TournamentStatus `json:"status"`
	Organizer            *models.Organizer       `json:"organizer"`
}

// ListTournamentsResult — тело успешного ответа листинга.
type ListTournamentsResult struct {
	Data       []TournamentListItem `json:"data"`
	HasMore    bool                 `json:"has_more"`
	NextCursor *string              `json:"next_cursor"`
}

type TournamentService struct {
	tournaments   repositories.TournamentRepository
	registrations repositories.RegistrationRepository
	uploader      storage.FileUploader
	logger        *slog.Logger
	now           func() time.Time
}

func NewTournamentService(
	tournaments repositories.TournamentRepository,
	registrations repositories.RegistrationRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TournamentService{
		tournaments:   tournaments,
		registrations: registrations,
		uploader:      uploader,
		logger:        logger,
		now:           time.Now,
	}
}

// ListTournaments исполняет весь конвейер листинга: скомпилированный запрос
// с overfetch'ем на одну строку, определение has_more, подсчёт участников
// по id страницы и приведение строк к публичной форме. Оба чтения строго
// последовательны — второе зависит от id первой выборки. Ошибка хранилища
// обрывает конвейер немедленно, без повторов.
func (s *TournamentService) ListTournaments(ctx context.Context, params *query.ListParams) (*ListTournamentsResult, error) {
	// "Сегодня" вычисляется один раз на запрос.
	today := s.now()

	spec := query.BuildListSpec(params, today)

	rows, err := s.tournaments.List(ctx, spec)
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > params.Limit
	if hasMore {
		rows = rows[:params.Limit]
	}

	counts := make(map[string]int)
	if len(rows) > 0 {
		ids := make([]string, len(rows))
		for i := range rows {
			ids[i] = rows[i].ID
		}
		counts, err = s.registrations.CountConfirmedByTournament(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	data := make([]TournamentListItem, 0, len(rows))
	for i := range rows {
		data = append(data, s.shapeTournament(&rows[i], counts))
	}

	// Курсор выдаётся только для непустой страницы с продолжением.
	var nextCursor *string
	if hasMore && len(rows) > 0 {
		last := &rows[len(rows)-1]
		token := query.EncodeCursor(last.SortValue(params.Sort), last.ID)
		nextCursor = &token
	}

	s.logger.Debug("tournament listing executed",
		slog.Int("rows", len(data)),
		slog.Bool("has_more", hasMore),
		slog.String("sort", params.Sort),
	)

	return &ListTournamentsResult{
		Data:       data,
		HasMore:    hasMore,
		NextCursor: nextCursor,
	}, nil
}

func (s *TournamentService) shapeTournament(t *models.Tournament, counts map[string]int) TournamentListItem {
	var posterURL *string
	if t.PosterKey != nil && s.uploader != nil {
		if resolved := s.uploader.GetPublicURL(*t.PosterKey); resolved != "" {
			posterURL = &resolved
		}
	}

	return TournamentListItem{
		ID:                   t.ID,
		Name:                 t.Name,
		VenueName:            t.VenueName,
		State:                t.VenueState,
		StartDate:            t.StartDate,
		EndDate:              t.EndDate,
		RegistrationDeadline: t.RegistrationDeadline,
		Format:               t.Format,
		TimeControl:          t.TimeControl,
		IsFIDERated:          t.IsFIDERated,
		IsMCFRated:           t.IsMCFRated,
		EntryFees:            t.EntryFees,
		MaxParticipants:      t.MaxParticipants,
		CurrentParticipants:  counts[t.ID],
		PosterURL:            posterURL,
		Status:               t.Status,
		Organizer:            t.OrganizerProfile(),
	}
}
