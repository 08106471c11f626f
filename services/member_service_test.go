package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serviceerrors "github.com/hanjiho/tripmate/services/errors"
	"github.com/hanjiho/tripmate/utils"
)

func TestRegisterAndResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(db)

	member, err := svc.Register("kim@example.com", "chanbin", "secret-password", "KR")
	require.NoError(t, err)
	assert.NotZero(t, member.ID)
	assert.NotEqual(t, "secret-password", member.PasswordHash)
	assert.True(t, utils.CheckPassword(member.PasswordHash, "secret-password"))

	byEmail, err := svc.FindByEmail("kim@example.com")
	require.NoError(t, err)
	assert.Equal(t, member.ID, byEmail.ID)

	byNickname, err := svc.FindByNickname("chanbin")
	require.NoError(t, err)
	assert.Equal(t, member.ID, byNickname.ID)

	byID, err := svc.FindByID(member.ID)
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", byID.Email)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(db)

	_, err := svc.Register("kim@example.com", "chanbin", "secret-password", "KR")
	require.NoError(t, err)

	_, err = svc.Register("kim@example.com", "someone", "secret-password", "KR")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrDuplicateEmail))

	_, err = svc.Register("lee@example.com", "chanbin", "secret-password", "KR")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrDuplicateNickname))
}

func TestFindUnknownMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(db)

	_, err := svc.FindByEmail("ghost@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrMemberNotFound))

	_, err = svc.FindByNickname("ghost")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrMemberNotFound))
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewMemberService(db)

	_, err := svc.Register("kim@example.com", "chanbin", "secret-password", "KR")
	require.NoError(t, err)
	_, err = svc.Register("lee@example.com", "jaehyuk", "secret-password", "KR")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile("kim@example.com", "frogbin", "FR", "travelling the alps")
	require.NoError(t, err)
	assert.Equal(t, "frogbin", updated.Nickname)
	assert.Equal(t, "FR", updated.Nation)

	// nickname collisions are refused on update too
	_, err = svc.UpdateProfile("kim@example.com", "jaehyuk", "", "")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrDuplicateNickname))
}
