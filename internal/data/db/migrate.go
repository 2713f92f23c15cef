package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&domain.User{},

		// Knowledge base
		&domain.Motorcycle{},
		&domain.Symptom{},
		&domain.Damage{},
		&domain.Cause{},
		&domain.Solution{},
		&domain.Rule{},
		&domain.RuleSymptom{},

		// History
		&domain.Consultation{},
		&domain.ConsultationSymptom{},
	)
}
