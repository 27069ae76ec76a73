package model

import "time"

// Post 内容主体；删除作者级联删帖，删除分组仅置空 group_id
type Post struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Text      string    `gorm:"type:text;not null"`
	// pub_date 创建时写入，此后不再变更
	PubDate   time.Time `gorm:"autoCreateTime;index:idx_post_pub_date;not null"`
	AuthorID  string    `gorm:"type:varchar(36);index:idx_post_author;not null"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID   *string   `gorm:"type:varchar(36);index:idx_post_group"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	Image     string    `gorm:"type:varchar(255)"` // posts/ 命名空间下的相对路径
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
