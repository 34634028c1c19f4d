package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

type bookmarkRepository struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(db *sql.DB) repository.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

func (r *bookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	query := `
		INSERT INTO bookmarks (id, owner_id, url, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	bookmark.ID = uuid.NewString()
	bookmark.CreatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		bookmark.ID,
		bookmark.OwnerID,
		bookmark.URL,
		bookmark.Title,
		bookmark.CreatedAt,
	).Scan(&bookmark.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	return bookmark, nil
}

func (r *bookmarkRepository) GetByID(ctx context.Context, id string) (*models.Bookmark, error) {
	query := `
		SELECT id, owner_id, url, title, created_at
		FROM bookmarks
		WHERE id = $1`

	bookmark := &models.Bookmark{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bookmark.ID,
		&bookmark.OwnerID,
		&bookmark.URL,
		&bookmark.Title,
		&bookmark.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bookmark by ID: %w", err)
	}

	return bookmark, nil
}
