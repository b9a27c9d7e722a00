package dbmysql

import (
	"time"
)

// Channel types as carried in a quoted reference.
const (
	ChannelTypeOpen    = "O"
	ChannelTypePrivate = "P"
	ChannelTypeDirect  = "D"
	ChannelTypeGroup   = "G"
)

type Channel struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255"`
	Type      string `gorm:"size:1;not null;default:'O'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Channel) TableName() string {
	return "channels"
}
