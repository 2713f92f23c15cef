// Package realtime defines the events broadcast when diagnoses are recorded.
package realtime

import "time"

const EventConsultationRecorded = "consultation.recorded"

// ConsultationEvent is published after a consultation commits. DamageID and
// RuleID are nil when no rule matched.
type ConsultationEvent struct {
	Event          string    `json:"event"`
	ConsultationID uint      `json:"consultation_id"`
	MotorcycleID   uint      `json:"motorcycle_id"`
	UserID         *uint     `json:"user_id,omitempty"`
	DamageID       *uint     `json:"damage_id"`
	RuleID         *uint     `json:"rule_id"`
	SymptomIDs     []uint    `json:"symptom_ids"`
	RecordedAt     time.Time `json:"recorded_at"`
}
