package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/ListboT/internal/models"
	"github.com/Kerhoff/ListboT/internal/repository"
	"github.com/Kerhoff/ListboT/internal/repository/memory"
)

const (
	alice = "user-alice"
	bob   = "user-bob"

	// well-formed ID that no store will ever hand out
	missingID = "00000000-0000-4000-8000-000000000000"
)

var errStoreDown = errors.New("connection refused")

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fixture struct {
	store *memory.Store
	repos Repositories
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	repos := Repositories{
		Users:       store.Users(),
		Bookmarks:   store.Bookmarks(),
		Lists:       store.Lists(),
		Memberships: store.Memberships(),
	}
	return &fixture{store: store, repos: repos, svc: New(repos, quietLogger(), nil)}
}

// rebuild recreates the services after a repository has been swapped
func (f *fixture) rebuild() {
	f.svc = New(f.repos, quietLogger(), nil)
}

func (f *fixture) manualList(t *testing.T, owner, name string) *models.List {
	t.Helper()
	list, err := f.svc.Lists.Create(context.Background(), owner, models.NewList{
		Name: name,
		Icon: "📚",
		Type: models.ListTypeManual,
	})
	require.NoError(t, err)
	return list
}

func (f *fixture) smartList(t *testing.T, owner, name, query string) *models.List {
	t.Helper()
	list, err := f.svc.Lists.Create(context.Background(), owner, models.NewList{
		Name:  name,
		Icon:  "🔎",
		Type:  models.ListTypeSmart,
		Query: &query,
	})
	require.NoError(t, err)
	return list
}

func (f *fixture) bookmark(t *testing.T, owner string) *models.Bookmark {
	t.Helper()
	b, err := f.svc.Bookmarks.Create(context.Background(), owner, "https://example.com/"+owner, "")
	require.NoError(t, err)
	return b
}

func strPtr(s string) *string {
	return &s
}

// ============================================================================
// Repository doubles
// ============================================================================

// staleListRepo reports "nothing matched" on every mutation, as if the row
// vanished between the guard and the write.
type staleListRepo struct {
	repository.ListRepository
}

func (r staleListRepo) Update(context.Context, string, string, models.ListPatch) (*models.List, error) {
	return nil, nil
}

func (r staleListRepo) Delete(context.Context, string, string) (int64, error) {
	return 0, nil
}

type failingListRepo struct {
	repository.ListRepository
}

func (r failingListRepo) GetByID(context.Context, string) (*models.List, error) {
	return nil, errStoreDown
}

type failingMembershipRepo struct {
	repository.MembershipRepository
}

func (r failingMembershipRepo) Add(context.Context, *models.Membership) error {
	return errStoreDown
}

func (r failingMembershipRepo) Remove(context.Context, string, string) (int64, error) {
	return 0, errStoreDown
}

// countingMembershipRepo records write attempts
type countingMembershipRepo struct {
	repository.MembershipRepository
	writes int
}

func (r *countingMembershipRepo) Add(ctx context.Context, m *models.Membership) error {
	r.writes++
	return r.MembershipRepository.Add(ctx, m)
}

func (r *countingMembershipRepo) Remove(ctx context.Context, listID, bookmarkID string) (int64, error) {
	r.writes++
	return r.MembershipRepository.Remove(ctx, listID, bookmarkID)
}
