package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hanjiho/tripmate/models"
)

// newTestDB opens a per-test in-memory sqlite database and migrates the full
// schema, so service tests exercise the exact production query paths.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a shared-cache memory db lives as long as one connection stays open
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Feed{},
		&models.Tag{},
		&models.Follow{},
		&models.Recruitment{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedMember(t *testing.T, db *gorm.DB, email, nickname string) *models.Member {
	t.Helper()
	member := models.Member{Email: email, Nickname: nickname, PasswordHash: "x"}
	require.NoError(t, db.Create(&member).Error)
	return &member
}

func seedFeed(t *testing.T, db *gorm.DB, member *models.Member, contents string, tagNames ...string) *models.Feed {
	t.Helper()
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		var tag models.Tag
		require.NoError(t, db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error)
		tags = append(tags, tag)
	}
	feed := models.Feed{
		MemberID: member.ID,
		Contents: contents,
		Location: "Seoul",
		Tags:     tags,
	}
	require.NoError(t, db.Create(&feed).Error)
	return &feed
}

func seedRecruitment(t *testing.T, db *gorm.DB, member *models.Member, title string) *models.Recruitment {
	t.Helper()
	recruitment := models.Recruitment{
		MemberID:        member.ID,
		Title:           title,
		Content:         "looking for travel buddies",
		TravelNation:    "France",
		TravelStartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		TravelEndDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Status:          models.RecruitmentOpen,
	}
	require.NoError(t, db.Create(&recruitment).Error)
	return &recruitment
}
