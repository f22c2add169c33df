package repository

import (
	"context"

	"redviva-data/internal/domain"
)

// RecipientsRepository care-recipient and assignment reads.
// Assignments are created by a provisioning process, not by this service.
type RecipientsRepository interface {
	GetRecipient(ctx context.Context, recipientID string) (*domain.Recipient, error)
	// ListAssignedRecipients recipients linked to one caregiver
	ListAssignedRecipients(ctx context.Context, caregiverID string) ([]*domain.Recipient, error)
	// IsAssigned reports whether the caregiver is linked to the recipient.
	IsAssigned(ctx context.Context, caregiverID, recipientID string) (bool, error)
	// ListRecipients all active recipients with their caregivers nested (professional portal)
	ListRecipients(ctx context.Context, page, size int) ([]*domain.Recipient, int, error)
}
