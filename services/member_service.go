package services

import (
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/hanjiho/tripmate/models"
	serviceerrors "github.com/hanjiho/tripmate/services/errors"
	"github.com/hanjiho/tripmate/utils"
)

// MemberService resolves and manages member accounts. The other services use
// it to turn authenticated emails and public nicknames into member rows.
type MemberService struct {
	db *gorm.DB
}

// NewMemberService creates a MemberService bound to the given storage handle.
func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{db: db}
}

// Register creates a member account after checking email and nickname
// uniqueness. The password is stored as a bcrypt hash.
func (s *MemberService) Register(email, nickname, password, nation string) (*models.Member, error) {
	if err := s.CheckDuplicatedEmail(email); err != nil {
		return nil, err
	}
	if err := s.CheckDuplicatedNickname(nickname); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, serviceerrors.Wrap(serviceerrors.ErrInternal, "failed to hash password", err)
	}

	member := models.Member{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hash,
		Nation:       nation,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to create member", err)
	}
	return &member, nil
}

// FindByEmail returns the member with the given email.
func (s *MemberService) FindByEmail(email string) (*models.Member, error) {
	return findMemberByEmail(s.db, email)
}

// FindByNickname returns the member with the given nickname.
func (s *MemberService) FindByNickname(nickname string) (*models.Member, error) {
	return findMemberByNickname(s.db, nickname)
}

// FindByID returns the member with the given identifier.
func (s *MemberService) FindByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := s.db.First(&member, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerrors.New(serviceerrors.ErrMemberNotFound, "member not found")
		}
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to load member", err)
	}
	return &member, nil
}

// CheckDuplicatedEmail fails when the email is already registered.
func (s *MemberService) CheckDuplicatedEmail(email string) error {
	var cnt int64
	if err := s.db.Model(&models.Member{}).Where("email = ?", email).Count(&cnt).Error; err != nil {
		return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to check email", err)
	}
	if cnt > 0 {
		return serviceerrors.New(serviceerrors.ErrDuplicateEmail, "email already registered")
	}
	return nil
}

// CheckDuplicatedNickname fails when the nickname is already taken.
func (s *MemberService) CheckDuplicatedNickname(nickname string) error {
	var cnt int64
	if err := s.db.Model(&models.Member{}).Where("nickname = ?", nickname).Count(&cnt).Error; err != nil {
		return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to check nickname", err)
	}
	if cnt > 0 {
		return serviceerrors.New(serviceerrors.ErrDuplicateNickname, "nickname already taken")
	}
	return nil
}

// UpdateProfile changes the mutable profile fields of the member owning the
// authenticated email. Empty fields are left untouched.
func (s *MemberService) UpdateProfile(email, nickname, nation, introduction string) (*models.Member, error) {
	member, err := findMemberByEmail(s.db, email)
	if err != nil {
		return nil, err
	}
	if nickname != "" && nickname != member.Nickname {
		if err := s.CheckDuplicatedNickname(nickname); err != nil {
			return nil, err
		}
		member.Nickname = nickname
	}
	if nation != "" {
		member.Nation = nation
	}
	if introduction != "" {
		member.Introduction = introduction
	}
	if err := s.db.Save(member).Error; err != nil {
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to update member", err)
	}
	return member, nil
}

// findMemberByEmail is shared by the services so guard checks inside a
// transaction can resolve members through the transaction handle.
func findMemberByEmail(tx *gorm.DB, email string) (*models.Member, error) {
	var member models.Member
	if err := tx.Where("email = ?", email).First(&member).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerrors.New(serviceerrors.ErrMemberNotFound, "member not found")
		}
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to load member", err)
	}
	return &member, nil
}

func findMemberByNickname(tx *gorm.DB, nickname string) (*models.Member, error) {
	var member models.Member
	if err := tx.Where("nickname = ?", nickname).First(&member).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerrors.New(serviceerrors.ErrMemberNotFound, "member not found")
		}
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to load member", err)
	}
	return &member, nil
}
