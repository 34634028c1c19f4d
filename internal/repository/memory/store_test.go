package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
)

func seed(t *testing.T, s *Store) (*models.List, *models.Bookmark) {
	t.Helper()
	ctx := context.Background()

	list, err := s.Lists().Create(ctx, &models.List{OwnerID: "alice", Name: "Reading", Icon: "📚", Type: models.ListTypeManual})
	require.NoError(t, err)
	bookmark, err := s.Bookmarks().Create(ctx, &models.Bookmark{OwnerID: "alice", URL: "https://go.dev"})
	require.NoError(t, err)
	return list, bookmark
}

func TestListRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()
	s := New()
	list, _ := seed(t, s)
	ctx := context.Background()

	got, err := s.Lists().GetByID(ctx, list.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := s.Lists().GetByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading", again.Name)
}

func TestListRepository_OwnerPredicate(t *testing.T) {
	t.Parallel()
	s := New()
	list, _ := seed(t, s)
	ctx := context.Background()
	name := "Hijacked"

	got, err := s.Lists().GetByIDAndOwner(ctx, list.ID, "bob")
	require.NoError(t, err)
	assert.Nil(t, got)

	updated, err := s.Lists().Update(ctx, list.ID, "bob", models.ListPatch{Name: &name})
	require.NoError(t, err)
	assert.Nil(t, updated)

	deleted, err := s.Lists().Delete(ctx, list.ID, "bob")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	stored, err := s.Lists().GetByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reading", stored.Name)
}

func TestMembershipRepository_AddRemove(t *testing.T) {
	t.Parallel()
	s := New()
	list, bookmark := seed(t, s)
	repo := s.Memberships()
	ctx := context.Background()
	m := &models.Membership{ListID: list.ID, BookmarkID: bookmark.ID}

	require.NoError(t, repo.Add(ctx, m))
	assert.False(t, m.AddedAt.IsZero())

	err := repo.Add(ctx, &models.Membership{ListID: list.ID, BookmarkID: bookmark.ID})
	assert.True(t, errors.Is(err, repository.ErrDuplicate))

	err = repo.Add(ctx, &models.Membership{ListID: list.ID, BookmarkID: "missing"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, repository.ErrDuplicate))

	removed, err := repo.Remove(ctx, list.ID, bookmark.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.Remove(ctx, list.ID, bookmark.ID)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestListRepository_DeleteCascadesMemberships(t *testing.T) {
	t.Parallel()
	s := New()
	list, bookmark := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Memberships().Add(ctx, &models.Membership{ListID: list.ID, BookmarkID: bookmark.ID}))

	deleted, err := s.Lists().Delete(ctx, list.ID, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	lists, err := s.Memberships().GetListsByBookmark(ctx, bookmark.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestMembershipRepository_ConcurrentAdd_OneWins(t *testing.T) {
	t.Parallel()
	s := New()
	list, bookmark := seed(t, s)
	repo := s.Memberships()

	const workers = 16
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		duplicates int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Add(context.Background(), &models.Membership{ListID: list.ID, BookmarkID: bookmark.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, repository.ErrDuplicate):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, duplicates)
}
