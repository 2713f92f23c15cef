package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/motodiag-backend/internal/data/repos"
	"github.com/yungbote/motodiag-backend/internal/domain"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/ctxutil"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
)

type ConsultationService interface {
	// List returns every consultation for admins and the caller's own
	// consultations for everyone else.
	List(ctx context.Context) ([]*domain.Consultation, error)
}

type consultationService struct {
	db               *gorm.DB
	log              *logger.Logger
	consultationRepo repos.ConsultationRepo
}

func NewConsultationService(db *gorm.DB, log *logger.Logger, consultationRepo repos.ConsultationRepo) ConsultationService {
	return &consultationService{
		db:               db,
		log:              log.With("service", "ConsultationService"),
		consultationRepo: consultationRepo,
	}
}

func (cs *consultationService) List(ctx context.Context) ([]*domain.Consultation, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == 0 {
		return nil, apierr.Unauthorized("unauthorized", "authentication required")
	}
	if rd.Role == domain.RoleAdmin {
		return cs.consultationRepo.List(ctx, nil)
	}
	return cs.consultationRepo.ListByUser(ctx, nil, rd.UserID)
}
