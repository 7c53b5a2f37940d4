package service

import (
	"context"
	"fmt"

	"halcon-service/internal/apperr"
	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PawnStore is the persistence needed by PawnService
type PawnStore interface {
	ListPawns(ctx context.Context) ([]models.PawnListing, error)
	GetPawn(ctx context.Context, id int64) (*models.Pawn, error)
	CreatePawn(ctx context.Context, p *models.Pawn) error
	UpdatePawn(ctx context.Context, p *models.Pawn) error
	DeletePawn(ctx context.Context, id int64) error
}

// PawnService handles pawn transactions and their status lifecycle.
//
// In the default permissive mode any status string is stored as given. With
// strict transitions enabled, statuses must be one of the known values and
// changes must follow models.CanTransition.
type PawnService struct {
	store     PawnStore
	publisher Publisher
	strict    bool
	logger    *zap.Logger
}

func NewPawnService(store PawnStore, publisher Publisher, strictTransitions bool) *PawnService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &PawnService{
		store:     store,
		publisher: publisher,
		strict:    strictTransitions,
		logger:    util.GetLogger(),
	}
}

// List returns every pawn with its customer and employee names, newest first
func (s *PawnService) List(ctx context.Context) ([]models.PawnListing, error) {
	return s.store.ListPawns(ctx)
}

func (s *PawnService) Get(ctx context.Context, id int64) (*models.Pawn, error) {
	return s.store.GetPawn(ctx, id)
}

func (s *PawnService) Create(ctx context.Context, req *PawnRequest) (p *models.Pawn, err error) {
	ctx, span := util.StartSpan(ctx, "PawnService.Create")
	defer func() { util.EndSpan(span, err) }()

	p = req.toModel(0)
	if err = s.checkStatus(p.Status); err != nil {
		return nil, err
	}
	if err = s.store.CreatePawn(ctx, p); err != nil {
		return nil, err
	}

	recordWrite("pawn", "create")
	s.logger.Info("Pawn created",
		zap.Int64("pawn_id", p.PawnID),
		zap.String("status", p.Status),
		zap.Int64("ctr_id", p.CtrID))

	s.publish(ctx, models.EventTypePawnCreated, p, "")
	return p, nil
}

// Update replaces every mutable field of the pawn
func (s *PawnService) Update(ctx context.Context, id int64, req *PawnRequest) (p *models.Pawn, err error) {
	ctx, span := util.StartSpan(ctx, "PawnService.Update", attribute.Int64("pawn_id", id))
	defer func() { util.EndSpan(span, err) }()

	current, err := s.store.GetPawn(ctx, id)
	if err != nil {
		return nil, err
	}

	p = req.toModel(id)
	if err = s.checkStatus(p.Status); err != nil {
		return nil, err
	}
	if s.strict && !models.CanTransition(models.PawnStatus(current.Status), models.PawnStatus(p.Status)) {
		return nil, apperr.Newf(apperr.CodeStateConflict,
			"pawn cannot move from %s to %s", current.Status, p.Status).
			WithDetails(map[string]any{"from": current.Status, "to": p.Status})
	}

	if err = s.store.UpdatePawn(ctx, p); err != nil {
		return nil, err
	}
	recordWrite("pawn", "update")

	if current.Status != p.Status {
		util.PawnStatusChangesTotal.WithLabelValues(current.Status, p.Status).Inc()
		s.logger.Info("Pawn status changed",
			zap.Int64("pawn_id", id),
			zap.String("from", current.Status),
			zap.String("to", p.Status))
		s.publish(ctx, models.EventTypePawnStatusChanged, p, current.Status)
	}
	return p, nil
}

// Delete removes the pawn permanently
func (s *PawnService) Delete(ctx context.Context, id int64) error {
	current, err := s.store.GetPawn(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeletePawn(ctx, id); err != nil {
		return err
	}

	recordWrite("pawn", "delete")
	s.logger.Info("Pawn deleted", zap.Int64("pawn_id", id))
	s.publish(ctx, models.EventTypePawnDeleted, current, "")
	return nil
}

func (s *PawnService) checkStatus(status string) error {
	if !s.strict || models.PawnStatus(status).Valid() {
		return nil
	}
	return apperr.Newf(apperr.CodeValidation, "unknown pawn status %q", status).
		WithDetails(map[string]any{"status": fmt.Sprintf("must be one of %v", models.PawnStatuses())})
}

func (s *PawnService) publish(ctx context.Context, eventType string, p *models.Pawn, previous string) {
	event := &models.PawnEvent{
		BaseEvent:      newBaseEvent(eventType),
		PawnID:         p.PawnID,
		Status:         p.Status,
		PreviousStatus: previous,
		CustomerID:     p.CtrID,
		EmployeeID:     p.EpeID,
	}
	if err := s.publisher.PublishPawnEvent(ctx, event); err != nil {
		logPublishFailure(s.logger, eventType, err)
		return
	}
	recordPublished(eventType)
	s.logger.Debug("Pawn event published",
		zap.String("event_type", eventType),
		zap.Int64("pawn_id", p.PawnID))
}
