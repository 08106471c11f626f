package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serviceerrors "github.com/hanjiho/tripmate/services/errors"
)

func TestFollowAndUnfollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	kim := seedMember(t, db, "kim@example.com", "chanbin")
	lee := seedMember(t, db, "lee@example.com", "jaehyuk")

	require.NoError(t, svc.Follow("kim@example.com", "lee@example.com"))

	following, err := svc.IsFollowing(kim.ID, lee.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// the relation is directed
	reverse, err := svc.IsFollowing(lee.ID, kim.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, svc.Unfollow("kim@example.com", "lee@example.com"))

	following, err = svc.IsFollowing(kim.ID, lee.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowSelfIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	seedMember(t, db, "kim@example.com", "chanbin")

	err := svc.Follow("kim@example.com", "kim@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrSelfFollow))
}

func TestFollowTwiceIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	seedMember(t, db, "kim@example.com", "chanbin")
	seedMember(t, db, "lee@example.com", "jaehyuk")

	require.NoError(t, svc.Follow("kim@example.com", "lee@example.com"))

	err := svc.Follow("kim@example.com", "lee@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrDuplicateFollow))
}

func TestUnfollowWithoutRelation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	seedMember(t, db, "kim@example.com", "chanbin")
	seedMember(t, db, "lee@example.com", "jaehyuk")

	err := svc.Unfollow("kim@example.com", "lee@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrFollowNotFound))
}

func TestUnfollowTwiceFailsTheSecondTime(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	seedMember(t, db, "kim@example.com", "chanbin")
	seedMember(t, db, "lee@example.com", "jaehyuk")

	require.NoError(t, svc.Follow("kim@example.com", "lee@example.com"))
	require.NoError(t, svc.Unfollow("kim@example.com", "lee@example.com"))

	err := svc.Unfollow("kim@example.com", "lee@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrFollowNotFound))
}

func TestFollowUnknownMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	seedMember(t, db, "kim@example.com", "chanbin")

	err := svc.Follow("kim@example.com", "ghost@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrMemberNotFound))

	err = svc.Follow("ghost@example.com", "kim@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrMemberNotFound))
}
