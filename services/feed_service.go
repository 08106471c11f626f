package services

import (
	stderrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hanjiho/tripmate/models"
	serviceerrors "github.com/hanjiho/tripmate/services/errors"
	"github.com/hanjiho/tripmate/utils"
)

// FeedPageSize is the fixed page size for feed pagination.
const FeedPageSize = 20

// FeedFilter selects which posts a feed page is drawn from. At most one of
// Nickname and TagName may be set; the zero value means no filter.
type FeedFilter struct {
	Nickname string
	TagName  string
}

// FeedService implements cursor based feed retrieval and feed authoring.
// All durable state lives in the injected storage handle; the service itself
// is stateless and safe for concurrent use.
type FeedService struct {
	db *gorm.DB
}

// NewFeedService creates a FeedService bound to the given storage handle.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{db: db}
}

// FetchPage returns up to FeedPageSize posts older than the cursor, newest
// first, with author and tags loaded. lastFeedID == 0 starts from the most
// recent post. Every returned post has ID < lastFeedID, so a caller that
// always passes the last seen ID never observes a post twice.
func (s *FeedService) FetchPage(lastFeedID uint, filter FeedFilter) ([]models.Feed, error) {
	if filter.Nickname != "" && filter.TagName != "" {
		return nil, serviceerrors.New(serviceerrors.ErrInvalidInput, "nickname and tag filters cannot be combined")
	}

	query := s.db.Model(&models.Feed{}).
		Preload("Member").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		Order("feeds.id DESC").
		Limit(FeedPageSize)

	if lastFeedID > 0 {
		query = query.Where("feeds.id < ?", lastFeedID)
	}

	switch {
	case filter.Nickname != "":
		author, err := findMemberByNickname(s.db, filter.Nickname)
		if err != nil {
			return nil, err
		}
		query = query.Where("feeds.member_id = ?", author.ID)
	case filter.TagName != "":
		query = query.
			Joins("JOIN feed_tags ON feed_tags.feed_id = feeds.id").
			Joins("JOIN tags ON tags.id = feed_tags.tag_id").
			Where("tags.name = ?", filter.TagName)
	}

	var feeds []models.Feed
	if err := query.Find(&feeds).Error; err != nil {
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to fetch feed page", err)
	}
	return feeds, nil
}

// FindByID returns a single post with author and tags loaded.
func (s *FeedService) FindByID(feedID uint) (*models.Feed, error) {
	return findFeedByID(s.db, feedID)
}

// Create stores a new post for the member owning the given email. Tag names
// are de-duplicated and resolved lazily, creating missing tags on the fly.
func (s *FeedService) Create(email, contents, location string, tagNames []string) (*models.Feed, error) {
	var created models.Feed
	err := s.db.Transaction(func(tx *gorm.DB) error {
		member, err := findMemberByEmail(tx, email)
		if err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		created = models.Feed{
			MemberID: member.ID,
			Contents: contents,
			Location: location,
			Tags:     tags,
		}
		if err := tx.Create(&created).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to create feed", err)
		}
		created.Member = *member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update rewrites contents, location and tags of the member's own post.
// The identifier and author never change.
func (s *FeedService) Update(email string, feedID uint, contents, location string, tagNames []string) (*models.Feed, error) {
	var updated *models.Feed
	err := s.db.Transaction(func(tx *gorm.DB) error {
		feed, err := checkFeedWriter(tx, feedID, email)
		if err != nil {
			return err
		}
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		feed.Contents = contents
		feed.Location = location
		if err := tx.Omit(clause.Associations).Save(feed).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to update feed", err)
		}
		if err := tx.Model(feed).Association("Tags").Replace(tags); err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to update feed tags", err)
		}
		feed.Tags = tags
		updated = feed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete soft-deletes the member's own post. The row is retained; a second
// delete of the same post fails with a not-found error.
func (s *FeedService) Delete(email string, feedID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		feed, err := checkFeedWriter(tx, feedID, email)
		if err != nil {
			return err
		}
		if err := tx.Delete(feed).Error; err != nil {
			return serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to delete feed", err)
		}
		return nil
	})
}

// checkFeedWriter resolves the post and verifies the acting member wrote it.
func checkFeedWriter(tx *gorm.DB, feedID uint, email string) (*models.Feed, error) {
	feed, err := findFeedByID(tx, feedID)
	if err != nil {
		return nil, err
	}
	member, err := findMemberByEmail(tx, email)
	if err != nil {
		return nil, err
	}
	if feed.MemberID != member.ID {
		return nil, serviceerrors.New(serviceerrors.ErrWriterMismatch, "feed writer does not match")
	}
	return feed, nil
}

func findFeedByID(tx *gorm.DB, feedID uint) (*models.Feed, error) {
	var feed models.Feed
	err := tx.Preload("Member").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.name ASC")
		}).
		First(&feed, feedID).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerrors.New(serviceerrors.ErrFeedNotFound, "feed not found")
		}
		return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to load feed", err)
	}
	return &feed, nil
}

// resolveTags maps tag names to tag rows, creating missing ones.
func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	names = utils.UniqueStrings(names)
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, serviceerrors.Wrap(serviceerrors.ErrDatabase, "failed to resolve tag", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
