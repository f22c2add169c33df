package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
)

// CaseService professional case files over caregiver-submitted data.
type CaseService struct {
	cases      repository.CasesRepository
	recipients repository.RecipientsRepository
	audit      repository.AuditRepository
	logger     *zap.Logger
}

func NewCaseService(cases repository.CasesRepository, recipients repository.RecipientsRepository, audit repository.AuditRepository, logger *zap.Logger) *CaseService {
	return &CaseService{cases: cases, recipients: recipients, audit: audit, logger: logger}
}

// Create opens a case file for a recipient.
func (s *CaseService) Create(ctx context.Context, actor domain.Profile, recipientID, summary string, priority domain.CasePriority, assigneeID *string) (string, error) {
	// recipient must exist; lookup failure denies creation
	if _, err := s.recipients.GetRecipient(ctx, recipientID); err != nil {
		return "", err
	}

	c := &domain.Case{
		RecipientID: recipientID,
		AssigneeID:  assigneeID,
		Priority:    priority,
		Summary:     strings.TrimSpace(summary),
	}
	caseID, err := s.cases.CreateCase(ctx, c)
	if err != nil {
		return "", err
	}

	if err := s.audit.InsertEntry(ctx, &domain.AuditEntry{
		ActorID:    actor.ProfileID,
		ActorRole:  actor.Role,
		Action:     domain.AuditCaseCreated,
		EntityType: "case",
		EntityID:   caseID,
		Detail:     "recipient " + recipientID,
	}); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.Error(err))
	}

	s.logger.Info("Case created",
		zap.String("case_id", caseID),
		zap.String("recipient_id", recipientID),
		zap.String("actor_id", actor.ProfileID),
	)
	return caseID, nil
}

// Update applies a partial update and audit-logs it.
func (s *CaseService) Update(ctx context.Context, actor domain.Profile, caseID string, upd repository.CaseUpdate) error {
	if err := s.cases.UpdateCase(ctx, caseID, upd); err != nil {
		return err
	}

	detail := ""
	if upd.Status != nil {
		detail = "status " + string(*upd.Status)
	}
	if err := s.audit.InsertEntry(ctx, &domain.AuditEntry{
		ActorID:    actor.ProfileID,
		ActorRole:  actor.Role,
		Action:     domain.AuditCaseUpdated,
		EntityType: "case",
		EntityID:   caseID,
		Detail:     detail,
	}); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.Error(err))
	}
	return nil
}

func (s *CaseService) List(ctx context.Context, filters repository.CaseFilters, page, size int) ([]*domain.Case, int, error) {
	return s.cases.ListCases(ctx, filters, page, size)
}

func (s *CaseService) Get(ctx context.Context, caseID string) (*domain.Case, error) {
	return s.cases.GetCase(ctx, caseID)
}
