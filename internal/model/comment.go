package model

import "time"

// Comment 帖子评论；帖子或作者删除时级联删除
type Comment struct {
	ID       string    `gorm:"primaryKey;type:varchar(36)"`
	PostID   string    `gorm:"type:varchar(36);index:idx_comment_post;not null"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID string    `gorm:"type:varchar(36);not null"`
	Author   *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string    `gorm:"type:text;not null"`
	Created  time.Time `gorm:"autoCreateTime"`
}

func (Comment) TableName() string { return "comments" }
