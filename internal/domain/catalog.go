package domain

import "time"

type Motorcycle struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand     string    `gorm:"size:100;not null;column:brand" json:"brand"`
	Model     string    `gorm:"size:100;not null;column:model" json:"model"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Motorcycle) TableName() string { return "motorcycles" }

type Symptom struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string `gorm:"size:10;not null;uniqueIndex;column:code" json:"code"`
	Name        string `gorm:"size:255;not null;column:name" json:"name"`
	Description string `gorm:"type:text;column:description" json:"description"`
}

func (Symptom) TableName() string { return "symptoms" }

// Damage is a failure condition. Causes and Solutions are owned by the
// damage and are removed with it.
type Damage struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"size:10;not null;uniqueIndex;column:code" json:"code"`
	Name        string     `gorm:"size:255;not null;column:name" json:"name"`
	Description string     `gorm:"type:text;column:description" json:"description"`
	Causes      []Cause    `gorm:"foreignKey:DamageID;constraint:OnDelete:CASCADE" json:"causes"`
	Solutions   []Solution `gorm:"foreignKey:DamageID;constraint:OnDelete:CASCADE" json:"solutions"`
}

func (Damage) TableName() string { return "damages" }

type Cause struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	DamageID    uint   `gorm:"not null;index;column:damage_id" json:"damage_id"`
	Description string `gorm:"type:text;column:description" json:"description"`
}

func (Cause) TableName() string { return "causes" }

type Solution struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	DamageID    uint   `gorm:"not null;index;column:damage_id" json:"damage_id"`
	Description string `gorm:"type:text;column:description" json:"description"`
}

func (Solution) TableName() string { return "solutions" }
