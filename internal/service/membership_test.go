package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/ListboT/internal/models"
)

func TestMembership_AddListRemoveRoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	list := f.manualList(t, alice, "Reading")
	b := f.bookmark(t, alice)
	ctx := context.Background()

	require.NoError(t, f.svc.Memberships.Add(ctx, alice, list.ID, b.ID))

	lists, err := f.svc.Memberships.ListsOfBookmark(ctx, alice, b.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "Reading", lists[0].Name)

	require.NoError(t, f.svc.Memberships.Remove(ctx, alice, list.ID, b.ID))

	err = f.svc.Memberships.Remove(ctx, alice, list.ID, b.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, MsgAlreadyNotInList, err.Error())

	lists, err = f.svc.Memberships.ListsOfBookmark(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestMembership_DuplicateAdd_ReturnsInvalidArgument(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	list := f.manualList(t, alice, "Reading")
	b := f.bookmark(t, alice)
	ctx := context.Background()

	require.NoError(t, f.svc.Memberships.Add(ctx, alice, list.ID, b.ID))

	err := f.svc.Memberships.Add(ctx, alice, list.ID, b.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, MsgAlreadyInList, err.Error())

	stats, err := f.svc.Memberships.Stats(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[list.ID])
}

func TestMembership_SmartList_RejectedWithoutWrite(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	list := f.smartList(t, alice, "Unread", "is:unread")
	b := f.bookmark(t, alice)

	counting := &countingMembershipRepo{MembershipRepository: f.repos.Memberships}
	f.repos.Memberships = counting
	f.rebuild()
	ctx := context.Background()

	err := f.svc.Memberships.Add(ctx, alice, list.ID, b.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, MsgSmartListAdd, err.Error())

	err = f.svc.Memberships.Remove(ctx, alice, list.ID, b.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, MsgSmartListRemove, err.Error())

	assert.Zero(t, counting.writes)
}

func TestMembership_GuardOrder(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	own := f.manualList(t, alice, "Reading")
	foreignList := f.manualList(t, bob, "Bob's")
	ownBookmark := f.bookmark(t, alice)
	foreignBookmark := f.bookmark(t, bob)
	ctx := context.Background()

	tests := []struct {
		name       string
		listID     string
		bookmarkID string
		want       error
	}{
		{"foreign list beats missing bookmark", foreignList.ID, missingID, ErrForbidden},
		{"missing list beats foreign bookmark", missingID, foreignBookmark.ID, ErrNotFound},
		{"foreign bookmark", own.ID, foreignBookmark.ID, ErrForbidden},
		{"missing bookmark", own.ID, missingID, ErrNotFound},
		{"malformed bookmark id", own.ID, "b1", ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, f.svc.Memberships.Add(ctx, alice, tt.listID, tt.bookmarkID), tt.want)
			assert.ErrorIs(t, f.svc.Memberships.Remove(ctx, alice, tt.listID, tt.bookmarkID), tt.want)
		})
	}

	lists, err := f.svc.Memberships.ListsOfBookmark(ctx, alice, ownBookmark.ID)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestMembership_StoreFailure_ReturnsInternal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	list := f.manualList(t, alice, "Reading")
	b := f.bookmark(t, alice)

	f.repos.Memberships = failingMembershipRepo{f.repos.Memberships}
	f.rebuild()
	ctx := context.Background()

	err := f.svc.Memberships.Add(ctx, alice, list.ID, b.ID)
	assert.Equal(t, KindInternal, KindOf(err))
	assert.NotErrorIs(t, err, ErrInvalidArgument)

	err = f.svc.Memberships.Remove(ctx, alice, list.ID, b.ID)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestListsOfBookmark_CrossOwnerMembership_ReturnsInternal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	own := f.manualList(t, alice, "Reading")
	foreign := f.manualList(t, bob, "Bob's")
	b := f.bookmark(t, alice)
	ctx := context.Background()

	require.NoError(t, f.svc.Memberships.Add(ctx, alice, own.ID, b.ID))
	// written below the service, which would never allow it
	require.NoError(t, f.repos.Memberships.Add(ctx, &models.Membership{ListID: foreign.ID, BookmarkID: b.ID}))

	lists, err := f.svc.Memberships.ListsOfBookmark(ctx, alice, b.ID)

	assert.Nil(t, lists)
	assert.Equal(t, KindInternal, KindOf(err))
}

func TestListsOfBookmark_GuardFailures(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	b := f.bookmark(t, alice)
	ctx := context.Background()

	_, err := f.svc.Memberships.ListsOfBookmark(ctx, "", b.ID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = f.svc.Memberships.ListsOfBookmark(ctx, bob, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Memberships.ListsOfBookmark(ctx, alice, missingID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats_CountsManualListsOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	reading := f.manualList(t, alice, "Reading")
	empty := f.manualList(t, alice, "Empty")
	smart := f.smartList(t, alice, "Unread", "is:unread")
	f.manualList(t, bob, "Bob's")
	first := f.bookmark(t, alice)
	second, err := f.svc.Bookmarks.Create(context.Background(), alice, "https://example.org/second", "Second")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, f.svc.Memberships.Add(ctx, alice, reading.ID, first.ID))
	require.NoError(t, f.svc.Memberships.Add(ctx, alice, reading.ID, second.ID))

	stats, err := f.svc.Memberships.Stats(ctx, alice)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{reading.ID: 2, empty.ID: 0}, stats)
	assert.NotContains(t, stats, smart.ID)

	_, err = f.svc.Memberships.Stats(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
