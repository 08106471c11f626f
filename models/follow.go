package models

import "time"

// Follow is a directed edge in the member follow graph: follower subscribes
// to followee. The composite unique index backs the at-most-one-edge-per-pair
// invariant at the storage level.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index:idx_follows_follower;index:idx_follows_pair,unique" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;index:idx_follows_followee;index:idx_follows_pair,unique" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for Follow.
func (Follow) TableName() string {
	return "follows"
}
