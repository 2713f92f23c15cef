package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Motorcycle   repos.MotorcycleRepo
	Symptom      repos.SymptomRepo
	Damage       repos.DamageRepo
	Rule         repos.RuleRepo
	Consultation repos.ConsultationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Motorcycle:   repos.NewMotorcycleRepo(db, log),
		Symptom:      repos.NewSymptomRepo(db, log),
		Damage:       repos.NewDamageRepo(db, log),
		Rule:         repos.NewRuleRepo(db, log),
		Consultation: repos.NewConsultationRepo(db, log),
	}
}
