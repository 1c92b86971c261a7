package models

import "time"

// RegistrationStatus — статус заявки на участие. К вместимости турнира
// засчитываются только confirmed.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationWithdrawn RegistrationStatus = "withdrawn"
)

// Registration — заявка игрока на турнир. Создаётся и изменяется
// организаторскими write-путями и платёжными вебхуками вне этого сервиса;
// здесь она только читается для подсчёта участников.
type Registration struct {
	ID           string             `json:"id" db:"id"`
	TournamentID string             `json:"tournament_id" db:"tournament_id"`
	UserID       string             `json:"user_id" db:"user_id"`
	Status       RegistrationStatus `json:"status" db:"status"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}
