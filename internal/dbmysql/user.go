package dbmysql

import (
	"time"

	"goquote/internal/common"
)

type User struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Handle    string    `gorm:"column:handle;uniqueIndex;size:50;not null" json:"handle"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) ToCommon() *common.User {
	return &common.User{ID: u.UserID, Username: u.Handle}
}
