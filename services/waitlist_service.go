package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mychesstour/chesstour-api/models"
	"github.com/mychesstour/chesstour-api/repositories"
)

// WaitlistService записывает email'ы в лист ожидания раннего доступа.
type WaitlistService struct {
	waitlistRepo repositories.WaitlistRepository
}

func NewWaitlistService(waitlistRepo repositories.WaitlistRepository) *WaitlistService {
	return &WaitlistService{waitlistRepo: waitlistRepo}
}

// Join добавляет email в лист ожидания. Повторная запись того же email —
// не сбой: наружу уходит ErrWaitlistDuplicate с дружелюбным сообщением.
func (s *WaitlistService) Join(ctx context.Context, email string) (*models.WaitlistEntry, error) {
	entry := &models.WaitlistEntry{
		ID:    uuid.NewString(),
		Email: email,
	}

	if err := s.waitlistRepo.Add(ctx, entry); err != nil {
		if err == repositories.ErrWaitlistDuplicate {
			return nil, ErrWaitlistDuplicate
		}
		return nil, fmt.Errorf("failed to join waitlist: %w", err)
	}

	return entry, nil
}
