package service

import (
	"context"

	"github.com/deppfellow/mipp-portal/internal/model"
	"github.com/deppfellow/mipp-portal/internal/model/user"
	"github.com/deppfellow/mipp-portal/internal/repository"
)

type HistorialService struct {
	repo *repository.HistorialRepository
}

func NewHistorialService(repo *repository.HistorialRepository) *HistorialService {
	return &HistorialService{repo: repo}
}

// ForUser returns the caller's own requests across every kind.
func (s *HistorialService) ForUser(ctx context.Context, su *user.SessionUser, q *model.HistorialQuery) (*model.HistorialResponse, error) {
	items, err := s.repo.ForCedula(ctx, su.User.Cedula, *q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.HistorialItem{}
	}
	return &model.HistorialResponse{Items: items}, nil
}
