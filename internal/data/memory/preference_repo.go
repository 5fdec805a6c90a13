package memory

import (
	"context"

	"github.com/bvggies/recommendersystem/internal/data/entity"

	"github.com/google/uuid"
)

type preferenceRepository struct {
	s *Store
}

func (r *preferenceRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Preference, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.preferences[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
