package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/query"
)

// InMemoryTournamentRepository — эталонная реализация хранилища поверх среза:
// интерпретирует то же дерево предикатов, что и Postgres-реализация.
// Используется в тестах движка запросов и как фикстура локальной разработки.
type InMemoryTournamentRepository struct {
	Tournaments []models.Tournament

	// Err, если задана, возвращается из List вместо результата.
	Err error
}

func NewInMemoryTournamentRepository(tournaments ...models.Tournament) *InMemoryTournamentRepository {
	return &InMemoryTournamentRepository{Tournaments: tournaments}
}

func (r *InMemoryTournamentRepository) List(_ context.Context, spec query.ListSpec) ([]models.Tournament, error) {
	if r.Err != nil {
		return nil, r.Err
	}

	matched := make([]models.Tournament, 0)
	for _, t := range r.Tournaments {
		ok, err := matchesAll(&t, spec.Where)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, t)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		for _, o := range spec.OrderBy {
			a := columnValue(&matched[i], o.Column)
			b := columnValue(&matched[j], o.Column)
			if a == b {
				continue
			}
			if o.Desc {
				return a > b
			}
			return a < b
		}
		return false
	})

	if spec.Limit > 0 && len(matched) > spec.Limit {
		matched = matched[:spec.Limit]
	}

	return matched, nil
}

func matchesAll(t *models.Tournament, preds []query.Predicate) (bool, error) {
	for _, p := range preds {
		ok, err := matches(t, p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func matches(t *models.Tournament, p query.Predicate) (bool, error) {
	switch pred := p.(type) {
	case query.Cond:
		v := columnValue(t, pred.Column)
		switch pred.Op {
		case query.OpEq:
			return v == pred.Value, nil
		case query.OpGt:
			return v > pred.Value, nil
		case query.OpGte:
			return v >= pred.Value, nil
		case query.OpLt:
			return v < pred.Value, nil
		case query.OpLte:
			return v <= pred.Value, nil
		case query.OpContains:
			return strings.Contains(strings.ToLower(v), strings.ToLower(pred.Value)), nil
		}
		return false, fmt.Errorf("unknown filter op: %s", pred.Op)

	case query.In:
		v := columnValue(t, pred.Column)
		for _, candidate := range pred.Values {
			if v == candidate {
				return true, nil
			}
		}
		return false, nil

	case query.Or:
		for _, sub := range pred.Preds {
			ok, err := matches(t, sub)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case query.And:
		return matchesAll(t, pred.Preds)
	}

	return false, fmt.Errorf("unknown predicate type: %T", p)
}

// columnValue — строковое значение колонки; сравнение строк здесь совпадает
// с порядком в Postgres (ISO-даты и RFC3339 сравниваются лексикографически).
func columnValue(t *models.Tournament, column string) string {
	switch column {
	case query.ColID:
		return t.ID
	case query.ColName:
		return t.Name
	case query.ColVenueName:
		return t.VenueName
	case query.ColVenueState:
		return t.VenueState
	case query.ColStartDate:
		return t.StartDate
	case query.ColEndDate:
		return t.EndDate
	case query.ColCreatedAt:
		return t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	case query.ColFormatType:
		return t.Format.Type
	case query.ColFIDERated:
		return strconv.FormatBool(t.IsFIDERated)
	case query.ColMCFRated:
		return strconv.FormatBool(t.IsMCFRated)
	case query.ColStatus:
		return string(t.Status)
	}
	return ""
}

// InMemoryRegistrationRepository считает подтверждённые заявки из среза.
// Calls фиксирует, обращались ли к хранилищу вообще — короткое замыкание
// на пустой странице проверяется именно по нему.
type InMemoryRegistrationRepository struct {
	Registrations []models.Registration
	Calls         int
	Err           error
}

func NewInMemoryRegistrationRepository(registrations ...models.Registration) *InMemoryRegistrationRepository {
	return &InMemoryRegistrationRepository{Registrations: registrations}
}

func (r *InMemoryRegistrationRepository) CountConfirmedByTournament(_ context.Context, tournamentIDs []string) (map[string]int, error) {
	r.Calls++
	if r.Err != nil {
		return nil, r.Err
	}

	wanted := make(map[string]bool, len(tournamentIDs))
	for _, id := range tournamentIDs {
		wanted[id] = true
	}

	counts := make(map[string]int)
	for _, reg := range r.Registrations {
		if reg.Status == models.RegistrationConfirmed && wanted[reg.TournamentID] {
			counts[reg.TournamentID]++
		}
	}
	return counts, nil
}
