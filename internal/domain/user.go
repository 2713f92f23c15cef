package domain

import (
	"encoding/json"
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:100;uniqueIndex;not null;column:username" json:"username"`
	Password  string    `gorm:"size:255;not null;column:password" json:"-"`
	Role      string    `gorm:"size:20;not null;column:role" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at" json:"-"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        uint   `json:"id"`
		Username  string `json:"username"`
		Role      string `json:"role"`
		CreatedAt string `json:"created_at"`
	}{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC().Format(consultationDateLayout),
	})
}
