package services

import (
	"gorm.io/gorm"

	"github.com/hanjiho/tripmate/models"
	serviceerrors "github.com/hanjiho/tripmate/services/errors"
)

// FollowService maintains the directed follow relation between members.
// Both operations run as a single storage transaction so the existence check
// and the write cannot interleave with a concurrent request.
type FollowService struct {
	db *gorm.DB
}

// NewFollowService creates a FollowService bound to the given storage handle.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow makes the member behind followerEmail follow the member behind
// followeeEmail. Fails when either member is unknown, when the two are the
// same member, or when the relation already exists.
func (s *FollowService) Follow(followerEmail, followeeEmail string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		follower, err := findMemberByEmail(tx, followerEmail)
		if err != nil {
			return err
		}
		followee, err := findMemberByEmail(tx, followeeEmail)
		if err != nil {
			return err
		}
		if follower.ID == followee.ID {
			return serviceerrors.New(serviceerrors.ErrSelfFollow, "cannot follow yourself")
		}

		var cnt int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND followee_id = ?", follower.ID, followee.ID).
			Count(&cnt).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to check follow relation", err)
		}
		if cnt > 0 {
			return serviceerrors.New(serviceerrors.ErrDuplicateFollow, "already following this member")
		}

		relation := models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}
		if err := tx.Create(&relation).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to create follow relation", err)
		}
		return nil
	})
}

// Unfollow removes the directed relation. Removing a relation that does not
// exist fails with a not-found error rather than succeeding silently.
func (s *FollowService) Unfollow(followerEmail, followeeEmail string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		follower, err := findMemberByEmail(tx, followerEmail)
		if err != nil {
			return err
		}
		followee, err := findMemberByEmail(tx, followeeEmail)
		if err != nil {
			return err
		}

		res := tx.Where("follower_id = ? AND followee_id = ?", follower.ID, followee.ID).
			Delete(&models.Follow{})
		if res.Error != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to delete follow relation", res.Error)
		}
		if res.RowsAffected == 0 {
			return serviceerrors.New(serviceerrors.ErrFollowNotFound, "follow relation not found")
		}
		return nil
	})
}

// IsFollowing reports whether the directed relation exists.
func (s *FollowService) IsFollowing(followerID, followeeID uint) (bool, error) {
	var cnt int64
	if err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&cnt).Error; err != nil {
		return false, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to check follow relation", err)
	}
	return cnt > 0, nil
}
