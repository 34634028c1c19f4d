package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Kerhoff/ListboT/internal/models"
)

type bookmarkRepository struct {
	s *Store
}

func (r *bookmarkRepository) Create(_ context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	bookmark.ID = uuid.NewString()
	bookmark.CreatedAt = time.Now()

	stored := *bookmark
	r.s.bookmarks[bookmark.ID] = &stored
	return bookmark, nil
}

func (r *bookmarkRepository) GetByID(_ context.Context, id string) (*models.Bookmark, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookmarks[id]
	if !ok {
		return nil, nil
	}
	c := *b
	return &c, nil
}
