package model

import "time"

// Follow 关注关系的有向边（follower 关注 followee）
// (A→B) 不意味着 (B→A)；两端用户删除时级联删边
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	Follower   *User  `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FolloweeID string `gorm:"type:varchar(36);not null;index:idx_follow_pair,unique"`
	Followee   *User  `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
	// 复合唯一键，避免重复关注
	// idx_follow_pair = (follower_id, followee_id)
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }
