package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/query"
	"github.com/mychesstour/chesstour-api/repositories"
	"github.com/mychesstour/chesstour-api/storage"
)

var fixedToday = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

// stubUploader резолвит ключи в предсказуемые URL, как R2-хранилище.
type stubUploader struct{}

func (stubUploader) Upload(_ context.Context, key string, _ string, _ io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{Key: key}, nil
}
func (stubUploader) Delete(_ context.Context, _ string) error { return nil }
func (stubUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func newTestService(
	tournaments repositories.TournamentRepository,
	registrations repositories.RegistrationRepository,
) *TournamentService {
	svc := NewTournamentService(tournaments, registrations, stubUploader{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return fixedToday }
	return svc
}

func publishedTournament(id, name, startDate string) models.Tournament {
	return models.Tournament{
		ID:         id,
		Name:       name,
		VenueName:  "Dewan Komuniti",
		VenueState: "Selangor",
		StartDate:  startDate,
		EndDate:    startDate,
		Format:     models.TournamentFormat{Type: "rapid", System: "swiss", Rounds: 7},
		Status:     models.StatusPublished,
		CreatedAt:  fixedToday.Add(-30 * 24 * time.Hour),
	}
}

func listParams(overrides func(*query.ListParams)) *query.ListParams {
	p := &query.ListParams{Sort: "start_date", Order: "asc", Limit: query.DefaultLimit}
	if overrides != nil {
		overrides(p)
	}
	return p
}

func TestListTournamentsPagination(t *testing.T) {
	// 21 турнир: ровно на одну строку больше страницы по умолчанию.
	tournaments := make([]models.Tournament, 0, 21)
	for i := 1; i <= 21; i++ {
		tournaments = append(tournaments, publishedTournament(
			fmt.Sprintf("t-%02d", i),
			fmt.Sprintf("Open %02d", i),
			fmt.Sprintf("2026-03-%02d", i),
		))
	}
	repo := repositories.NewInMemoryTournamentRepository(tournaments...)
	svc := newTestService(repo, repositories.NewInMemoryRegistrationRepository())

	result, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.NoError(t, err)

	require.Len(t, result.Data, 20)
	assert.True(t, result.HasMore)
	assert.Equal(t, "t-01", result.Data[0].ID)
	assert.Equal(t, "t-20", result.Data[19].ID)

	require.NotNil(t, result.NextCursor)
	cursor, err := query.DecodeCursor(*result.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-20", cursor.Value)
	assert.Equal(t, "t-20", cursor.ID)

	// Вторая страница: последняя строка, продолжения нет, курсор не выдаётся.
	second, err := svc.ListTournaments(context.Background(), listParams(func(p *query.ListParams) {
		p.Cursor = cursor
	}))
	require.NoError(t, err)

	require.Len(t, second.Data, 1)
	assert.Equal(t, "t-21", second.Data[0].ID)
	assert.False(t, second.HasMore)
	assert.Nil(t, second.NextCursor)
}

func TestListTournamentsKeysetWithDuplicateSortValues(t *testing.T) {
	// Четыре турнира с одной датой: tiebreak по id не должен ни пропустить,
	// ни повторить строку при переходе границы страницы.
	duplicates := []models.Tournament{
		publishedTournament("t-a", "Alpha", "2026-04-10"),
		publishedTournament("t-b", "Beta", "2026-04-10"),
		publishedTournament("t-c", "Gamma", "2026-04-10"),
		publishedTournament("t-d", "Delta", "2026-04-10"),
	}
	repo := repositories.NewInMemoryTournamentRepository(duplicates...)
	svc := newTestService(repo, repositories.NewInMemoryRegistrationRepository())

	var seen []string
	params := listParams(func(p *query.ListParams) { p.Limit = 2 })
	for {
		result, err := svc.ListTournaments(context.Background(), params)
		require.NoError(t, err)
		for _, item := range result.Data {
			seen = append(seen, item.ID)
		}
		if !result.HasMore {
			break
		}
		require.NotNil(t, result.NextCursor)
		cursor, err := query.DecodeCursor(*result.NextCursor)
		require.NoError(t, err)
		params = listParams(func(p *query.ListParams) {
			p.Limit = 2
			p.Cursor = cursor
		})
	}

	assert.Equal(t, []string{"t-a", "t-b", "t-c", "t-d"}, seen)
}

func TestListTournamentsEmptyPageSkipsCountQuery(t *testing.T) {
	registrations := repositories.NewInMemoryRegistrationRepository()
	svc := newTestService(repositories.NewInMemoryTournamentRepository(), registrations)

	result, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.NoError(t, err)

	assert.Empty(t, result.Data)
	assert.False(t, result.HasMore)
	assert.Nil(t, result.NextCursor)
	assert.Zero(t, registrations.Calls)
}

func TestListTournamentsParticipantCounts(t *testing.T) {
	repo := repositories.NewInMemoryTournamentRepository(
		publishedTournament("t-1", "Alpha", "2026-03-05"),
		publishedTournament("t-2", "Beta", "2026-03-06"),
		publishedTournament("t-3", "Gamma", "2026-03-07"),
	)
	registrations := repositories.NewInMemoryRegistrationRepository(
		models.Registration{ID: "r-1", TournamentID: "t-1", Status: models.RegistrationConfirmed},
		models.Registration{ID: "r-2", TournamentID: "t-1", Status: models.RegistrationConfirmed},
		models.Registration{ID: "r-3", TournamentID: "t-1", Status: models.RegistrationPending},
		models.Registration{ID: "r-4", TournamentID: "t-2", Status: models.RegistrationConfirmed},
		models.Registration{ID: "r-5", TournamentID: "t-2", Status: models.RegistrationWithdrawn},
	)
	svc := newTestService(repo, registrations)

	result, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.NoError(t, err)
	require.Len(t, result.Data, 3)

	// Турнир без единой заявки получает 0, не пропуск в ответе.
	assert.Equal(t, 2, result.Data[0].CurrentParticipants)
	assert.Equal(t, 1, result.Data[1].CurrentParticipants)
	assert.Equal(t, 0, result.Data[2].CurrentParticipants)
}

func TestListTournamentsRatingUnion(t *testing.T) {
	fide := publishedTournament("t-1", "FIDE Open", "2026-03-05")
	fide.IsFIDERated = true
	mcf := publishedTournament("t-2", "MCF Open", "2026-03-06")
	mcf.IsMCFRated = true
	unrated := publishedTournament("t-3", "Casual Cup", "2026-03-07")

	svc := newTestService(
		repositories.NewInMemoryTournamentRepository(fide, mcf, unrated),
		repositories.NewInMemoryRegistrationRepository(),
	)

	result, err := svc.ListTournaments(context.Background(), listParams(func(p *query.ListParams) {
		p.RatingFIDE = true
		p.RatingMCF = true
	}))
	require.NoError(t, err)

	require.Len(t, result.Data, 2)
	assert.Equal(t, "t-1", result.Data[0].ID)
	assert.Equal(t, "t-2", result.Data[1].ID)

	// Без фильтра рейтинга видны все опубликованные, включая нерейтинговые.
	all, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.NoError(t, err)
	assert.Len(t, all.Data, 3)
}

func TestListTournamentsHidesUnpublished(t *testing.T) {
	draft := publishedTournament("t-1", "Draft Cup", "2026-03-05")
	draft.Status = models.StatusDraft
	canceled := publishedTournament("t-2", "Canceled Cup", "2026-03-06")
	canceled.Status = models.StatusCanceled
	visible := publishedTournament("t-3", "Visible Cup", "2026-03-07")

	svc := newTestService(
		repositories.NewInMemoryTournamentRepository(draft, canceled, visible),
		repositories.NewInMemoryRegistrationRepository(),
	)

	result, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.NoError(t, err)

	require.Len(t, result.Data, 1)
	assert.Equal(t, "t-3", result.Data[0].ID)
}

func TestListTournamentsStoreErrorShortCircuits(t *testing.T) {
	storeErr := errors.New(`relation "tournaments" does not exist`)
	repo := repositories.NewInMemoryTournamentRepository()
	repo.Err = storeErr
	registrations := repositories.NewInMemoryRegistrationRepository()
	svc := newTestService(repo, registrations)

	result, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, result)
	assert.Zero(t, registrations.Calls)
}

func TestListTournamentsShaping(t *testing.T) {
	posterKey := "posters/t-1.jpg"
	withOrganizer := publishedTournament("t-1", "Alpha", "2026-03-05")
	withOrganizer.PosterKey = &posterKey
	// Массив из одного объекта — такой же валидный артефакт join'а, как объект.
	withOrganizer.RawOrganizer = json.RawMessage(`[{"id":"org-1","organization_name":"Selangor Chess"}]`)

	bare := publishedTournament("t-2", "Beta", "2026-03-06")
	bare.RawOrganizer = json.RawMessage(`null`)

	svc := newTestService(
		repositories.NewInMemoryTournamentRepository(withOrganizer, bare),
		repositories.NewInMemoryRegistrationRepository(),
	)

	result, err := svc.ListTournaments(context.Background(), listParams(nil))
	require.NoError(t, err)
	require.Len(t, result.Data, 2)

	first := result.Data[0]
	assert.Equal(t, "Selangor", first.State)
	require.NotNil(t, first.PosterURL)
	assert.Equal(t, "https://cdn.example.com/posters/t-1.jpg", *first.PosterURL)
	require.NotNil(t, first.Organizer)
	assert.Equal(t, "org-1", first.Organizer.ID)
	assert.Equal(t, "Selangor Chess", first.Organizer.OrganizationName)

	second := result.Data[1]
	assert.Nil(t, second.PosterURL)
	assert.Nil(t, second.Organizer)
}

func TestListTournamentsSortByCreatedAtDesc(t *testing.T) {
	older := publishedTournament("t-1", "Older", "2026-03-05")
	older.CreatedAt = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	newer := publishedTournament("t-2", "Newer", "2026-03-04")
	newer.CreatedAt = time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	svc := newTestService(
		repositories.NewInMemoryTournamentRepository(older, newer),
		repositories.NewInMemoryRegistrationRepository(),
	)

	result, err := svc.ListTournaments(context.Background(), listParams(func(p *query.ListParams) {
		p.Sort = "created_at"
		p.Order = "desc"
	}))
	require.NoError(t, err)

	require.Len(t, result.Data, 2)
	assert.Equal(t, "t-2", result.Data[0].ID)
	assert.Equal(t, "t-1", result.Data[1].ID)
}
