package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tenantnotes/model"
	"tenantnotes/repository"
	"tenantnotes/services"
	"tenantnotes/utils"

	"go.uber.org/zap"
)

// NotesService runs note operations on behalf of an authenticated identity.
// Every operation is scoped to the identity's tenant.
type NotesService struct {
	NotesRepo *repository.NotesRepo
	Publisher services.EventPublisher
	Now       func() time.Time
}

func NewNotesService(repo *repository.NotesRepo, publisher services.EventPublisher) *NotesService {
	if publisher == nil {
		publisher = services.NoopPublisher{}
	}
	return &NotesService{NotesRepo: repo, Publisher: publisher, Now: time.Now}
}

// NoteInput is the editable part of a note.
type NoteInput struct {
	Title   string
	Content string
}

func validateNote(in NoteInput) (NoteInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || utils.IsBlank(in.Content) {
		return in, fmt.Errorf("%w: title and content are required", model.ErrValidation)
	}
	if len(in.Title) > model.MaxTitleLength {
		return in, fmt.Errorf("%w: title exceeds %d characters", model.ErrValidation, model.MaxTitleLength)
	}
	if len(in.Content) > model.MaxContentLength {
		return in, fmt.Errorf("%w: content exceeds %d characters", model.ErrValidation, model.MaxContentLength)
	}
	return in, nil
}

func (svc *NotesService) ListNotes(ctx context.Context, identity *model.Identity) ([]*model.Note, error) {
	return svc.NotesRepo.GetTenantNotes(ctx, identity.TenantID)
}

func (svc *NotesService) GetNote(ctx context.Context, identity *model.Identity, noteID int64) (*model.Note, error) {
	return svc.NotesRepo.GetNote(ctx, noteID, identity.TenantID)
}

// CreateNote validates in and stores it as a note authored by identity. The
// quota is checked against the tenant's stored plan, so an upgrade takes
// effect before tokens issued on the free plan expire.
func (svc *NotesService) CreateNote(ctx context.Context, identity *model.Identity, in NoteInput) (*model.Note, error) {
	in, err := validateNote(in)
	if err != nil {
		return nil, err
	}

	var deniedPlan model.Plan
	note, err := svc.NotesRepo.CreateNote(ctx, &model.Note{
		Title:        in.Title,
		Content:      in.Content,
		AuthorUserID: identity.UserID,
		TenantID:     identity.TenantID,
	}, func(plan model.Plan, count int) error {
		err := services.CanCreateNote(plan, count)
		if err != nil {
			deniedPlan = plan
		}
		return err
	})
	if err != nil {
		if deniedPlan != "" {
			utils.TrackQuotaDenial(string(deniedPlan))
			zap.L().Info("note quota reached",
				zap.Int64("tenant_id", identity.TenantID),
				zap.String("tenant", identity.TenantSlug),
				zap.Int64("user_id", identity.UserID),
			)
		}
		return nil, err
	}

	utils.TrackNoteOperation("create")
	zap.L().Info("note created",
		zap.Int64("note_id", note.ID),
		zap.Int64("tenant_id", note.TenantID),
		zap.Int64("user_id", note.AuthorUserID),
	)
	svc.publish(ctx, identity, services.SubjectNoteCreated, note.ID, note)
	return note, nil
}

// UpdateNote replaces title and content. Any member of the tenant may edit
// any of its notes.
func (svc *NotesService) UpdateNote(ctx context.Context, identity *model.Identity, noteID int64, in NoteInput) (*model.Note, error) {
	in, err := validateNote(in)
	if err != nil {
		return nil, err
	}

	note, err := svc.NotesRepo.UpdateNote(ctx, noteID, identity.TenantID, in.Title, in.Content)
	if err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("update")
	svc.publish(ctx, identity, services.SubjectNoteUpdated, note.ID, note)
	return note, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, identity *model.Identity, noteID int64) error {
	if err := svc.NotesRepo.DeleteNote(ctx, noteID, identity.TenantID); err != nil {
		return err
	}

	utils.TrackNoteOperation("delete")
	zap.L().Info("note deleted",
		zap.Int64("note_id", noteID),
		zap.Int64("tenant_id", identity.TenantID),
		zap.Int64("user_id", identity.UserID),
	)
	svc.publish(ctx, identity, services.SubjectNoteDeleted, noteID, nil)
	return nil
}

// publish is best effort: a broker failure never fails the request.
func (svc *NotesService) publish(ctx context.Context, identity *model.Identity, subject string, resourceID int64, data any) {
	publishEvent(ctx, svc.Publisher, svc.Now, services.Event{
		Subject:    subject,
		TenantID:   identity.TenantID,
		ActorID:    identity.UserID,
		ResourceID: resourceID,
		Data:       data,
	})
}

func publishEvent(ctx context.Context, publisher services.EventPublisher, now func() time.Time, event services.Event) {
	if publisher == nil {
		return
	}
	if now == nil {
		now = time.Now
	}
	event.OccurredAt = now().UTC()
	if err := publisher.Publish(ctx, event); err != nil {
		zap.L().Warn("failed to publish event",
			zap.String("subject", event.Subject),
			zap.Int64("tenant_id", event.TenantID),
			zap.Error(err),
		)
	}
}
