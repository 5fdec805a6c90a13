package memory

import (
	"context"

	"github.com/bvggies/recommendersystem/internal/data/entity"
)

type notificationRepository struct {
	s *Store
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cp := *n
	r.s.notifications = append(r.s.notifications, &cp)
	return nil
}
