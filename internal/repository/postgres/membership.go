package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

type membershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new list membership repository
func NewMembershipRepository(db *sql.DB) repository.MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Add(ctx context.Context, membership *models.Membership) error {
	query := `
		INSERT INTO list_memberships (list_id, bookmark_id, added_at)
		VALUES ($1, $2, $3)`

	membership.AddedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		membership.ListID,
		membership.BookmarkID,
		membership.AddedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("bookmark %s in list %s: %w",
				membership.BookmarkID, membership.ListID, repository.ErrDuplicate)
		}
		return fmt.Errorf("failed to add list membership: %w", err)
	}

	return nil
}

func (r *membershipRepository) Remove(ctx context.Context, listID, bookmarkID string) (int64, error) {
	query := `DELETE FROM list_memberships WHERE list_id = $1 AND bookmark_id = $2`

	result, err := r.db.ExecContext(ctx, query, listID, bookmarkID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove list membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *membershipRepository) GetListsByBookmark(ctx context.Context, bookmarkID string) ([]*models.List, error) {
	query := `
		SELECT l.id, l.owner_id, l.name, l.icon, l.parent_id, l.type, l.query, l.created_at, l.updated_at
		FROM lists l
		INNER JOIN list_memberships m ON m.list_id = l.id
		WHERE m.bookmark_id = $1
		ORDER BY m.added_at ASC`

	rows, err := r.db.QueryContext(ctx, query, bookmarkID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists by bookmark: %w", err)
	}

	return scanLists(rows)
}

func (r *membershipRepository) CountByOwner(ctx context.Context, ownerID string) (map[string]int, error) {
	query := `
		SELECT l.id, COUNT(m.bookmark_id)
		FROM lists l
		LEFT JOIN list_memberships m ON m.list_id = l.id
		WHERE l.owner_id = $1 AND l.type = 'manual'
		GROUP BY l.id`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count list memberships: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			listID string
			count  int
		)
		if err := rows.Scan(&listID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan membership count: %w", err)
		}
		counts[listID] = count
	}

	return counts, rows.Err()
}
