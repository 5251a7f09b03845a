package core

import (
	"time"
)

// User is an account that owns worldbuilding records.
// Email is unique at the storage layer; PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:char(20)"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Email        string    `json:"email" gorm:"type:varchar(254);not null;uniqueIndex" validate:"required,email,max=254"`
	PasswordHash string    `json:"-" gorm:"type:varchar(72)"`
	Age          *int      `json:"age,omitempty" validate:"omitempty,gte=0"`
	CDate        time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate        time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Character is a worldbuilding record owned by exactly one user.
// mutable
type Character struct {
	ID            string    `json:"id" gorm:"primaryKey;type:char(20)"`
	UserID        string    `json:"userId" gorm:"type:char(20);not null;index:idx_character_owner_cdate,priority:1"`
	Name          string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Age           *int      `json:"age,omitempty" validate:"omitempty,gte=0,lte=10000"`
	Role          string    `json:"role" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Description   string    `json:"description" gorm:"type:varchar(1000);not null" validate:"required,max=1000"`
	Background    string    `json:"background,omitempty" gorm:"type:varchar(2000)" validate:"max=2000"`
	Personality   string    `json:"personality,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Appearance    string    `json:"appearance,omitempty" gorm:"type:varchar(500)" validate:"max=500"`
	Relationships string    `json:"relationships,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Motivations   string    `json:"motivations,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	CDate         time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index:idx_character_owner_cdate,priority:2,sort:desc"`
	MDate         time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Place is a worldbuilding record owned by exactly one user.
// mutable
type Place struct {
	ID           string    `json:"id" gorm:"primaryKey;type:char(20)"`
	UserID       string    `json:"userId" gorm:"type:char(20);not null;index:idx_place_owner_cdate,priority:1"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Type         string    `json:"type" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Description  string    `json:"description" gorm:"type:varchar(1000);not null" validate:"required,max=1000"`
	Location     string    `json:"location,omitempty" gorm:"type:varchar(500)" validate:"max=500"`
	Significance string    `json:"significance,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Atmosphere   string    `json:"atmosphere,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	History      string    `json:"history,omitempty" gorm:"type:varchar(2000)" validate:"max=2000"`
	Inhabitants  string    `json:"inhabitants,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Features     string    `json:"features,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	ImageURL     string    `json:"imageUrl,omitempty" gorm:"type:varchar(2048)" validate:"omitempty,url,max=2048"`
	CDate        time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index:idx_place_owner_cdate,priority:2,sort:desc"`
	MDate        time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Plot is a worldbuilding record owned by exactly one user.
// mutable
type Plot struct {
	ID           string    `json:"id" gorm:"primaryKey;type:char(20)"`
	UserID       string    `json:"userId" gorm:"type:char(20);not null;index:idx_plot_owner_cdate,priority:1"`
	Title        string    `json:"title" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Chapter      string    `json:"chapter,omitempty" gorm:"type:varchar(50)" validate:"max=50"`
	Type         string    `json:"type" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Description  string    `json:"description" gorm:"type:varchar(1000);not null" validate:"required,max=1000"`
	Timeframe    string    `json:"timeframe,omitempty" gorm:"type:varchar(100)" validate:"max=100"`
	Location     string    `json:"location,omitempty" gorm:"type:varchar(500)" validate:"max=500"`
	Characters   string    `json:"characters,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Significance string    `json:"significance,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Conflicts    string    `json:"conflicts,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Resolution   string    `json:"resolution,omitempty" gorm:"type:varchar(1000)" validate:"max=1000"`
	Notes        string    `json:"notes,omitempty" gorm:"type:varchar(2000)" validate:"max=2000"`
	ImageURL     string    `json:"imageUrl,omitempty" gorm:"type:varchar(2048)" validate:"omitempty,url,max=2048"`
	CDate        time.Time `json:"createdAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp();index:idx_plot_owner_cdate,priority:2,sort:desc"`
	MDate        time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
