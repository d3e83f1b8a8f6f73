package db

import (
	"time"

	"gorm.io/datatypes"
)

type GameHistory struct {
	ID          string         `gorm:"primaryKey;size:36"`
	GameID      string         `gorm:"size:36;uniqueIndex;not null"`
	CompletedAt time.Time      `gorm:"not null"`
	Players     datatypes.JSON `gorm:"type:jsonb;not null"`
	Rounds      datatypes.JSON `gorm:"type:jsonb;not null"`
	WinnerName  string         `gorm:"size:64"`
	WinnerScore int            `gorm:"not null;default:0"`
	TotalRounds int            `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}
