package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/nutshop/internal/models"
	"github.com/Skotchmaster/nutshop/internal/repo"
)

type HistoryService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func (s *HistoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *HistoryService) Record(ctx context.Context, userID uint, endpoint string) error {
	return s.Repo.AppendRequest(ctx, userID, endpoint, s.now())
}

func (s *HistoryService) List(ctx context.Context, userID uint) ([]models.RequestHistory, error) {
	return s.Repo.RequestHistory(ctx, userID)
}

func (s *HistoryService) Clear(ctx context.Context, userID uint) error {
	_, err := s.Repo.ClearRequestHistory(ctx, userID)
	return err
}
