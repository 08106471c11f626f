package services

import (
	stderrors "errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hanjiho/tripmate/models"
	serviceerrors "github.com/hanjiho/tripmate/services/errors"
	"github.com/hanjiho/tripmate/utils"
)

// RecruitmentPatch carries the mutable fields of a recruitment update. Nil
// fields are left untouched.
type RecruitmentPatch struct {
	Title           *string
	Content         *string
	TravelNation    *string
	TravelStartDate *time.Time
	TravelEndDate   *time.Time
}

// RecruitmentService guards the recruitment lifecycle: every mutation passes
// the existence, ownership and status checks before a write reaches storage.
type RecruitmentService struct {
	db *gorm.DB
}

// NewRecruitmentService creates a RecruitmentService bound to the given
// storage handle.
func NewRecruitmentService(db *gorm.DB) *RecruitmentService {
	return &RecruitmentService{db: db}
}

// Create stores a new recruitment owned by the member behind email, with
// status OPEN.
func (s *RecruitmentService) Create(email, title, content, travelNation string, start, end time.Time) (*models.Recruitment, error) {
	var created models.Recruitment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		member, err := findMemberByEmail(tx, email)
		if err != nil {
			return err
		}
		created = models.Recruitment{
			MemberID:        member.ID,
			Title:           title,
			Content:         content,
			TravelNation:    travelNation,
			TravelStartDate: start,
			TravelEndDate:   end,
			Status:          models.RecruitmentOpen,
		}
		if err := tx.Create(&created).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to create recruitment", err)
		}
		created.Member = *member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindByID resolves a recruitment; soft-deleted rows count as absent.
func (s *RecruitmentService) FindByID(id uint) (*models.Recruitment, error) {
	return findRecruitmentByID(s.db, id)
}

// FindByIDAndCheckExpired resolves a recruitment and additionally requires it
// to still be OPEN. Used on participation paths where ownership is
// irrelevant but freshness is.
func (s *RecruitmentService) FindByIDAndCheckExpired(id uint) (*models.Recruitment, error) {
	recruitment, err := findRecruitmentByID(s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.CheckExpired(recruitment); err != nil {
		return nil, err
	}
	return recruitment, nil
}

// CheckWriter resolves the recruitment and verifies the acting member's
// email matches the owner's. It returns the resolved, authorized entity for
// the caller to mutate.
func (s *RecruitmentService) CheckWriter(id uint, email string) (*models.Recruitment, error) {
	return checkRecruitmentWriter(s.db, id, email)
}

// CheckExpired fails when the recruitment has reached the terminal END
// status. Ownership plays no part in this check.
func (s *RecruitmentService) CheckExpired(recruitment *models.Recruitment) error {
	if recruitment.Status == models.RecruitmentEnd {
		utils.Logger.Debug("recruitment already ended", zap.Uint("recruitment_id", recruitment.ID))
		return serviceerrors.New(serviceerrors.ErrRecruitmentExpired, "recruitment already ended")
	}
	return nil
}

// Update applies the patch to the owner's recruitment while it is OPEN.
func (s *RecruitmentService) Update(id uint, email string, patch RecruitmentPatch) (*models.Recruitment, error) {
	var updated *models.Recruitment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		recruitment, err := checkRecruitmentWriter(tx, id, email)
		if err != nil {
			return err
		}
		if err := s.CheckExpired(recruitment); err != nil {
			return err
		}
		if patch.Title != nil {
			recruitment.Title = *patch.Title
		}
		if patch.Content != nil {
			recruitment.Content = *patch.Content
		}
		if patch.TravelNation != nil {
			recruitment.TravelNation = *patch.TravelNation
		}
		if patch.TravelStartDate != nil {
			recruitment.TravelStartDate = *patch.TravelStartDate
		}
		if patch.TravelEndDate != nil {
			recruitment.TravelEndDate = *patch.TravelEndDate
		}
		if err := tx.Omit(clause.Associations).Save(recruitment).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to update recruitment", err)
		}
		updated = recruitment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Close transitions the owner's recruitment from OPEN to END. Closing an
// already ended recruitment fails; END is terminal.
func (s *RecruitmentService) Close(id uint, email string) (*models.Recruitment, error) {
	var closed *models.Recruitment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		recruitment, err := checkRecruitmentWriter(tx, id, email)
		if err != nil {
			return err
		}
		if err := s.CheckExpired(recruitment); err != nil {
			return err
		}
		recruitment.Status = models.RecruitmentEnd
		if err := tx.Omit(clause.Associations).Save(recruitment).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to close recruitment", err)
		}
		closed = recruitment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// Delete soft-deletes the owner's recruitment while it is OPEN. The row is
// retained; later lookups treat it as absent.
func (s *RecruitmentService) Delete(id uint, email string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		recruitment, err := checkRecruitmentWriter(tx, id, email)
		if err != nil {
			return err
		}
		if err := s.CheckExpired(recruitment); err != nil {
			return err
		}
		if err := tx.Delete(recruitment).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to delete recruitment", err)
		}
		return nil
	})
}

func checkRecruitmentWriter(tx *gorm.DB, id uint, email string) (*models.Recruitment, error) {
	recruitment, err := findRecruitmentByID(tx, id)
	if err != nil {
		return nil, err
	}
	if recruitment.Member.Email != email {
		utils.Logger.Debug("recruitment writer mismatch",
			zap.Uint("recruitment_id", id), zap.String("email", email))
		return nil, serviceerrors.New(serviceerrors.ErrWriterMismatch, "recruitment writer does not match")
	}
	return recruitment, nil
}

func findRecruitmentByID(tx *gorm.DB, id uint) (*models.Recruitment, error) {
	var recruitment models.Recruitment
	if err := tx.Preload("Member").First(&recruitment, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerrors.New(serviceerrors.ErrRecruitmentNotFound, "recruitment not found")
		}
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to load recruitment", err)
	}
	return &recruitment, nil
}
