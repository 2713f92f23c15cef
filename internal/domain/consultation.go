package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Consultation records one diagnosis invocation.
type Consultation struct {
	ID               uint                  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID           *uint                 `gorm:"index;column:user_id" json:"user_id"`
	MotorcycleID     uint                  `gorm:"not null;index;column:motorcycle_id" json:"motorcycle_id"`
	DamageID         *uint                 `gorm:"index;column:damage_id" json:"damage_id"`
	RuleID           *uint                 `gorm:"column:rule_id" json:"rule_id"`
	DamageSnapshot   datatypes.JSON        `gorm:"column:damage_snapshot" json:"-"`
	ConsultationDate time.Time             `gorm:"not null;column:consultation_date" json:"-"`
	Symptoms         []ConsultationSymptom `gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Consultation) TableName() string { return "consultations" }

type ConsultationSymptom struct {
	ID             uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ConsultationID uint `gorm:"not null;index;column:consultation_id" json:"consultation_id"`
	SymptomID      uint `gorm:"not null;column:symptom_id" json:"symptom_id"`
}

func (ConsultationSymptom) TableName() string { return "consultation_symptoms" }

const consultationDateLayout = "2006-01-02 15:04:05"

func (c Consultation) SymptomIDs() []uint {
	out := make([]uint, 0, len(c.Symptoms))
	for _, cs := range c.Symptoms {
		out = append(out, cs.SymptomID)
	}
	return out
}

func (c Consultation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID               uint   `json:"id"`
		UserID           *uint  `json:"user_id"`
		MotorcycleID     uint   `json:"motorcycle_id"`
		DamageID         *uint  `json:"damage_id"`
		RuleID           *uint  `json:"rule_id"`
		ConsultationDate string `json:"consultation_date"`
		Symptoms         []uint `json:"symptoms"`
	}{
		ID:               c.ID,
		UserID:           c.UserID,
		MotorcycleID:     c.MotorcycleID,
		DamageID:         c.DamageID,
		RuleID:           c.RuleID,
		ConsultationDate: c.ConsultationDate.UTC().Format(consultationDateLayout),
		Symptoms:         c.SymptomIDs(),
	})
}
