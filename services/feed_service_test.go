package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serviceerrors "github.com/hanjiho/tripmate/services/errors"
)

func TestFetchPageReturnsNewestTwenty(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")

	for i := 1; i <= 25; i++ {
		seedFeed(t, db, member, fmt.Sprintf("post %d", i))
	}

	feeds, err := svc.FetchPage(0, FeedFilter{})
	require.NoError(t, err)
	require.Len(t, feeds, FeedPageSize)

	// newest first, identifiers strictly descending
	for i := 1; i < len(feeds); i++ {
		assert.Greater(t, feeds[i-1].ID, feeds[i].ID)
	}
	assert.Equal(t, "post 25", feeds[0].Contents)
	assert.Equal(t, "post 6", feeds[len(feeds)-1].Contents)
}

func TestFetchPageCursorWalkHasNoDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")

	for i := 1; i <= 47; i++ {
		seedFeed(t, db, member, fmt.Sprintf("post %d", i))
	}

	seen := map[uint]bool{}
	var cursor uint
	var lastID uint
	total := 0
	for {
		feeds, err := svc.FetchPage(cursor, FeedFilter{})
		require.NoError(t, err)
		if len(feeds) == 0 {
			break
		}
		for _, f := range feeds {
			assert.False(t, seen[f.ID], "feed %d returned twice", f.ID)
			seen[f.ID] = true
			if lastID != 0 {
				assert.Less(t, f.ID, lastID)
			}
			lastID = f.ID
		}
		total += len(feeds)
		cursor = feeds[len(feeds)-1].ID
	}
	assert.Equal(t, 47, total)
}

func TestFetchPageCursorExcludesCursorItself(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")

	first := seedFeed(t, db, member, "oldest")
	second := seedFeed(t, db, member, "newest")

	feeds, err := svc.FetchPage(second.ID, FeedFilter{})
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, first.ID, feeds[0].ID)

	feeds, err = svc.FetchPage(first.ID, FeedFilter{})
	require.NoError(t, err)
	assert.Empty(t, feeds)
}

func TestFetchPageEagerLoadsAuthorAndTags(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")
	seedFeed(t, db, member, "tagged post", "mountain", "alps", "hiking")

	feeds, err := svc.FetchPage(0, FeedFilter{})
	require.NoError(t, err)
	require.Len(t, feeds, 1)

	assert.Equal(t, "chanbin", feeds[0].Member.Nickname)
	require.Len(t, feeds[0].Tags, 3)
	// tags surface in a stable (name) order
	assert.Equal(t, "alps", feeds[0].Tags[0].Name)
	assert.Equal(t, "hiking", feeds[0].Tags[1].Name)
	assert.Equal(t, "mountain", feeds[0].Tags[2].Name)
}

func TestFetchPageByTagMatchesExactly(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")

	tagged := seedFeed(t, db, member, "alps post", "alps")
	seedFeed(t, db, member, "alps2 post", "alps2")
	seedFeed(t, db, member, "untagged post")

	feeds, err := svc.FetchPage(0, FeedFilter{TagName: "alps"})
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, tagged.ID, feeds[0].ID)
}

func TestFetchPageByNickname(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	kim := seedMember(t, db, "kim@example.com", "chanbin")
	lee := seedMember(t, db, "lee@example.com", "jaehyuk")

	seedFeed(t, db, kim, "kim post 1")
	mine := seedFeed(t, db, lee, "lee post")
	seedFeed(t, db, kim, "kim post 2")

	feeds, err := svc.FetchPage(0, FeedFilter{Nickname: "jaehyuk"})
	require.NoError(t, err)
	require.Len(t, feeds, 1)
	assert.Equal(t, mine.ID, feeds[0].ID)
}

func TestFetchPageByUnknownNickname(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)

	_, err := svc.FetchPage(0, FeedFilter{Nickname: "nobody"})
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrMemberNotFound))
}

func TestFetchPageRejectsCombinedFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)

	_, err := svc.FetchPage(0, FeedFilter{Nickname: "chanbin", TagName: "alps"})
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrInvalidInput))
}

func TestFetchPageEmptyFeed(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)

	feeds, err := svc.FetchPage(0, FeedFilter{})
	require.NoError(t, err)
	assert.Empty(t, feeds)
}

func TestCreateFeedResolvesTagsLazily(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	seedMember(t, db, "kim@example.com", "chanbin")

	feed, err := svc.Create("kim@example.com", "first", "Chamonix", []string{"alps", "alps", "hiking"})
	require.NoError(t, err)
	require.Len(t, feed.Tags, 2) // duplicates collapse

	// a second post reuses the existing tag rows
	again, err := svc.Create("kim@example.com", "second", "Chamonix", []string{"alps"})
	require.NoError(t, err)
	require.Len(t, again.Tags, 1)
	assert.Equal(t, feed.Tags[0].ID, again.Tags[0].ID)
}

func TestUpdateFeedRequiresWriter(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	kim := seedMember(t, db, "kim@example.com", "chanbin")
	seedMember(t, db, "lee@example.com", "jaehyuk")
	feed := seedFeed(t, db, kim, "original")

	_, err := svc.Update("lee@example.com", feed.ID, "hijacked", "", nil)
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrWriterMismatch))

	updated, err := svc.Update("kim@example.com", feed.ID, "edited", "Annecy", []string{"lake"})
	require.NoError(t, err)
	assert.Equal(t, feed.ID, updated.ID)
	assert.Equal(t, "edited", updated.Contents)
	require.Len(t, updated.Tags, 1)
}

func TestDeleteFeedIsSoftAndNotRepeatable(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")
	feed := seedFeed(t, db, member, "ephemeral")

	require.NoError(t, svc.Delete("kim@example.com", feed.ID))

	// the row survives for moderation, but reads treat it as absent
	var count int64
	require.NoError(t, db.Unscoped().Model(feed).Where("id = ?", feed.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err := svc.FindByID(feed.ID)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrFeedNotFound))

	err = svc.Delete("kim@example.com", feed.ID)
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrFeedNotFound))
}

func TestDeletedFeedLeavesPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewFeedService(db)
	member := seedMember(t, db, "kim@example.com", "chanbin")

	seedFeed(t, db, member, "keep 1")
	gone := seedFeed(t, db, member, "drop")
	seedFeed(t, db, member, "keep 2")

	require.NoError(t, svc.Delete("kim@example.com", gone.ID))

	feeds, err := svc.FetchPage(0, FeedFilter{})
	require.NoError(t, err)
	require.Len(t, feeds, 2)
	for _, f := range feeds {
		assert.NotEqual(t, gone.ID, f.ID)
	}
}
