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

type listRepository struct {
	db *sql.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sql.DB) repository.ListRepository {
	return &listRepository{db: db}
}

const listColumns = `id, owner_id, name, icon, parent_id, type, query, created_at, updated_at`

func scanList(row rowScanner) (*models.List, error) {
	list := &models.List{}
	err := row.Scan(
		&list.ID,
		&list.OwnerID,
		&list.Name,
		&list.Icon,
		&list.ParentID,
		&list.Type,
		&list.Query,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return list, nil
}

func scanLists(rows *sql.Rows) ([]*models.List, error) {
	defer rows.Close()

	var lists []*models.List
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, list)
	}

	return lists, rows.Err()
}

func (r *listRepository) Create(ctx context.Context, list *models.List) (*models.List, error) {
	query := `
		INSERT INTO lists (id, owner_id, name, icon, parent_id, type, query, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	now := time.Now()
	list.ID = uuid.NewString()
	list.CreatedAt = now
	list.UpdatedAt = now

	err := r.db.QueryRowContext(ctx, query,
		list.ID,
		list.OwnerID,
		list.Name,
		list.Icon,
		list.ParentID,
		string(list.Type),
		list.Query,
		list.CreatedAt,
		list.UpdatedAt,
	).Scan(&list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return list, nil
}

func (r *listRepository) GetByID(ctx context.Context, id string) (*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = $1`

	list, err := scanList(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get list by ID: %w", err)
	}

	return list, nil
}

func (r *listRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.List, error) {
	query := `SELECT ` + listColumns + ` FROM lists WHERE id = $1 AND owner_id = $2`

	list, err := scanList(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get list by ID and owner: %w", err)
	}

	return list, nil
}

func (r *listRepository) GetByOwner(ctx context.Context, ownerID string) ([]*models.List, error) {
	query := `
		SELECT ` + listColumns + `
		FROM lists
		WHERE owner_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists by owner: %w", err)
	}

	return scanLists(rows)
}

func (r *listRepository) Update(ctx context.Context, id, ownerID string, patch models.ListPatch) (*models.List, error) {
	query := `
		UPDATE lists
		SET name = COALESCE($3, name),
			icon = COALESCE($4, icon),
			parent_id = CASE WHEN $5 THEN $6::uuid ELSE parent_id END,
			query = COALESCE($7, query),
			updated_at = $8
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + listColumns

	setParent := patch.ParentID != nil
	var parentID sql.NullString
	if setParent && *patch.ParentID != "" {
		parentID = sql.NullString{String: *patch.ParentID, Valid: true}
	}

	list, err := scanList(r.db.QueryRowContext(ctx, query,
		id,
		ownerID,
		patch.Name,
		patch.Icon,
		setParent,
		parentID,
		patch.Query,
		time.Now(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	return list, nil
}

// Delete relies on the ON DELETE CASCADE of list_memberships.list_id.
func (r *listRepository) Delete(ctx context.Context, id, ownerID string) (int64, error) {
	query := `DELETE FROM lists WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}

func (r *listRepository) CountByType(ctx context.Context) (map[models.ListType]int64, error) {
	query := `SELECT type, COUNT(*) FROM lists GROUP BY type`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count lists by type: %w", err)
	}
	defer rows.Close()

	counts := map[models.ListType]int64{
		models.ListTypeManual: 0,
		models.ListTypeSmart:  0,
	}
	for rows.Next() {
		var (
			listType string
			count    int64
		)
		if err := rows.Scan(&listType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan list count: %w", err)
		}
		counts[models.ListType(listType)] = count
	}

	return counts, rows.Err()
}
