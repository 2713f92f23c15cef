package domain

import (
	"encoding/json"
	"sort"
	"time"
)

// Rule concludes DamageID when every symptom in Symptoms has been observed.
type Rule struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	DamageID  uint          `gorm:"not null;index;column:damage_id" json:"damage_id"`
	Symptoms  []RuleSymptom `gorm:"foreignKey:RuleID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"-"`
}

func (Rule) TableName() string { return "rules" }

// RuleSymptom links a rule to one required symptom. Symptom is populated
// when the link is loaded and is nil if the symptom no longer exists.
type RuleSymptom struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	RuleID    uint     `gorm:"not null;index;column:rule_id" json:"rule_id"`
	SymptomID uint     `gorm:"not null;index;column:symptom_id" json:"symptom_id"`
	Symptom   *Symptom `gorm:"foreignKey:SymptomID" json:"-"`
}

func (RuleSymptom) TableName() string { return "rule_symptoms" }

// SymptomIDs returns the distinct required symptom ids in ascending order.
func (r *Rule) SymptomIDs() []uint {
	seen := make(map[uint]struct{}, len(r.Symptoms))
	out := make([]uint, 0, len(r.Symptoms))
	for _, rs := range r.Symptoms {
		if _, ok := seen[rs.SymptomID]; ok {
			continue
		}
		seen[rs.SymptomID] = struct{}{}
		out = append(out, rs.SymptomID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON renders the rule with a flat symptom id list.
func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       uint   `json:"id"`
		DamageID uint   `json:"damage_id"`
		Symptoms []uint `json:"symptoms"`
	}{
		ID:       r.ID,
		DamageID: r.DamageID,
		Symptoms: r.SymptomIDs(),
	})
}
