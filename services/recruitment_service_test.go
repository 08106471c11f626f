package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanjiho/tripmate/models"
	serviceerrors "github.com/hanjiho/tripmate/services/errors"
)

func TestCheckWriterAuthorizesOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	seedMember(t, db, "other@example.com", "other")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	_, err := svc.CheckWriter(recruitment.ID, "other@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrWriterMismatch))

	resolved, err := svc.CheckWriter(recruitment.ID, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, recruitment.ID, resolved.ID)
	assert.Equal(t, "owner@example.com", resolved.Member.Email)
}

func TestCheckWriterUnknownRecruitment(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	seedMember(t, db, "owner@example.com", "owner")

	_, err := svc.CheckWriter(999, "owner@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentNotFound))
}

func TestCloseEndsRecruitmentOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	closed, err := svc.Close(recruitment.ID, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RecruitmentEnd, closed.Status)

	// END is terminal: ownership still resolves but the status check fails
	resolved, err := svc.CheckWriter(recruitment.ID, "owner@example.com")
	require.NoError(t, err)
	err = svc.CheckExpired(resolved)
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentExpired))

	_, err = svc.Close(recruitment.ID, "owner@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentExpired))
}

func TestUpdateRequiresOpenStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	title := "Chamonix trip"
	updated, err := svc.Update(recruitment.ID, "owner@example.com", RecruitmentPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Chamonix trip", updated.Title)
	assert.Equal(t, recruitment.MemberID, updated.MemberID)

	_, err = svc.Close(recruitment.ID, "owner@example.com")
	require.NoError(t, err)

	title = "too late"
	_, err = svc.Update(recruitment.ID, "owner@example.com", RecruitmentPatch{Title: &title})
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentExpired))
}

func TestUpdateRequiresOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	seedMember(t, db, "other@example.com", "other")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	title := "hijacked"
	_, err := svc.Update(recruitment.ID, "other@example.com", RecruitmentPatch{Title: &title})
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrWriterMismatch))
}

func TestDeleteIsSoftAndTerminal(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	require.NoError(t, svc.Delete(recruitment.ID, "owner@example.com"))

	// the row survives, but every later lookup treats it as absent
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Recruitment{}).
		Where("id = ?", recruitment.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	_, err := svc.FindByID(recruitment.ID)
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentNotFound))

	err = svc.Delete(recruitment.ID, "owner@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentNotFound))
}

func TestDeleteRefusedAfterClose(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	_, err := svc.Close(recruitment.ID, "owner@example.com")
	require.NoError(t, err)

	err = svc.Delete(recruitment.ID, "owner@example.com")
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentExpired))
}

func TestFindByIDAndCheckExpired(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	owner := seedMember(t, db, "owner@example.com", "owner")
	recruitment := seedRecruitment(t, db, owner, "Mont Blanc trip")

	resolved, err := svc.FindByIDAndCheckExpired(recruitment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RecruitmentOpen, resolved.Status)

	_, err = svc.Close(recruitment.ID, "owner@example.com")
	require.NoError(t, err)

	_, err = svc.FindByIDAndCheckExpired(recruitment.ID)
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrRecruitmentExpired))
}

func TestCreateStartsOpen(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecruitmentService(db)
	seedMember(t, db, "owner@example.com", "owner")

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 9)
	recruitment, err := svc.Create("owner@example.com", "Mont Blanc trip",
		"looking for travel buddies", "France", start, end)
	require.NoError(t, err)
	assert.Equal(t, models.RecruitmentOpen, recruitment.Status)
	assert.Equal(t, "owner", recruitment.Member.Nickname)

	_, err = svc.Create("ghost@example.com", "no owner", "body", "France", start, end)
	require.Error(t, err)
	assert.True(t, serviceerrors.Is(err, serviceerrors.ErrMemberNotFound))
}
