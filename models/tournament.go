package models

import (
	"encoding/json"
	"time"
)

// TournamentStatus представляет статусы жизненного цикла турнира,
// соответствующие ENUM в БД. Через публичное API виден только published.
type TournamentStatus string

const (
	StatusDraft     TournamentStatus = "draft"
	StatusPublished TournamentStatus = "published"
	StatusCompleted TournamentStatus = "completed"
	StatusCanceled  TournamentStatus = "canceled"
)

// TournamentFormat описывает игровой формат турнира (JSONB колонка format).
type TournamentFormat struct {
	Type   string `json:"type"`   // rapid, blitz, classical, ...
	System string `json:"system"` // swiss, round_robin, knockout
	Rounds int    `json:"rounds"`
}

// TimeControl — контроль времени, опциональная часть формата.
type TimeControl struct {
	BaseMinutes      int `json:"base_minutes"`
	IncrementSeconds int `json:"increment_seconds"`
	DelaySeconds     int `json:"delay_seconds"`
}

// FeeTier — дополнительный (условный) взнос: early bird, возрастные категории и т.д.
type FeeTier struct {
	Type        string  `json:"type"`
	AmountCents int     `json:"amount_cents"`
	ValidUntil  *string `json:"valid_until,omitempty"`
	AgeMin      *int    `json:"age_min,omitempty"`
	AgeMax      *int    `json:"age_max,omitempty"`
}

// EntryFees — стандартный взнос плюс список дополнительных.
type EntryFees struct {
	Standard struct {
		AmountCents int `json:"amount_cents"`
	} `json:"standard"`
	Additional []FeeTier `json:"additional,omitempty"`
}

// Tournament — строка турнира, как её возвращает хранилище.
// StartDate/EndDate хранятся как календарные даты ISO (YYYY-MM-DD):
// лексикографический порядок таких строк совпадает с хронологическим,
// и именно в этом виде значения попадают в курсор пагинации.
type Tournament struct {
	ID                   string           `json:"id" db:"id"`
	Name                 string           `json:"name" db:"name"`
	VenueName            string           `json:"venue_name" db:"venue_name"`
	VenueState           string           `json:"venue_state" db:"venue_state"`
	StartDate            string           `json:"start_date" db:"start_date"`
	EndDate              string           `json:"end_date" db:"end_date"`
	RegistrationDeadline time.Time        `json:"registration_deadline" db:"registration_deadline"`
	Format               TournamentFormat `json:"format" db:"format"`
	TimeControl          *TimeControl     `json:"time_control,omitempty" db:"time_control"`
	IsFIDERated          bool             `json:"is_fide_rated" db:"is_fide_rated"`
	IsMCFRated           bool             `json:"is_mcf_rated" db:"is_mcf_rated"`
	EntryFees            EntryFees        `json:"entry_fees" db:"entry_fees"`
	MaxParticipants      int              `json:"max_participants" db:"max_participants"`
	PosterKey            *string          `json:"-" db:"poster_key"`
	Status               TournamentStatus `json:"status" db:"status"`
	OrganizerID          string           `json:"-" db:"organizer_id"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`

	// RawOrganizer — сырой артефакт join'а с organizer_profiles. В зависимости
	// от бэкенда сюда может прийти объект, массив из одного объекта или null.
	// Наружу он не отдаётся никогда: см. OrganizerProfile.
	RawOrganizer json.RawMessage `json:"-" db:"-"`
}

// SortValue возвращает строковое значение колонки сортировки для курсора
// и для сравнения предикатов. created_at форматируется в RFC3339 (UTC),
// поэтому порядок строк совпадает с хронологическим.
func (t *Tournament) SortValue(column string) string {
	switch column {
	case "created_at":
		return t.CreatedAt.UTC().Format(time.RFC3339)
	case "name":
		return t.Name
	default:
		return t.StartDate
	}
}

// OrganizerProfile нормализует RawOrganizer к "объект или nil" ровно в одном
// месте, чтобы форма join'а не протекала в вызывающий код.
func (t *Tournament) OrganizerProfile() *Organizer {
	raw := t.RawOrganizer
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []Organizer
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil
		}
		return &list[0]
	}

	var single Organizer
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil
	}
	return &single
}
