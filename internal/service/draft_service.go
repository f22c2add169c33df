package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"redviva-data/internal/store"
	"redviva-data/internal/wizard"
)

const (
	draftKeyPrefix         = "redviva:draft:"
	lastRecipientKeyPrefix = "redviva:last-recipient:"

	// Long enough to survive the day; stale drafts are filtered on load
	// anyway, the TTL only keeps abandoned keys from piling up.
	draftTTL         = 48 * time.Hour
	lastRecipientTTL = 30 * 24 * time.Hour
)

// DraftService persists in-progress wizard state, one draft per caregiver.
// Saved on every state mutation, so loss on abrupt close is zero.
type DraftService struct {
	kv     store.KV
	logger *zap.Logger
	now    func() time.Time
}

func NewDraftService(kv store.KV, logger *zap.Logger) *DraftService {
	return &DraftService{kv: kv, logger: logger, now: time.Now}
}

// WithNow overrides the clock. Tests only.
func (s *DraftService) WithNow(now func() time.Time) *DraftService {
	s.now = now
	return s
}

func draftKey(caregiverID string) string         { return draftKeyPrefix + caregiverID }
func lastRecipientKey(caregiverID string) string { return lastRecipientKeyPrefix + caregiverID }

// Save overwrites the caregiver's draft with the full wizard state.
func (s *DraftService) Save(ctx context.Context, caregiverID string, state wizard.DraftState) error {
	if caregiverID == "" {
		return fmt.Errorf("caregiver_id is required")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize draft: %w", err)
	}
	if err := s.kv.Set(ctx, draftKey(caregiverID), string(data), draftTTL); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Load returns the caregiver's draft, or nil when there is none.
// A draft from a previous day is stale and reported as absent (the
// value stays in the store until overwritten). A draft that fails to
// deserialize is likewise treated as absent, never as an error.
func (s *DraftService) Load(ctx context.Context, caregiverID string) (*wizard.DraftState, error) {
	raw, err := s.kv.Get(ctx, draftKey(caregiverID))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}

	var state wizard.DraftState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Warn("Discarding undecodable draft",
			zap.String("caregiver_id", caregiverID),
			zap.Error(err),
		)
		return nil, nil
	}

	if wizard.Stale(state, s.now()) {
		s.logger.Info("Ignoring stale draft",
			zap.String("caregiver_id", caregiverID),
			zap.String("draft_date", state.Meta.ReportDate),
		)
		return nil, nil
	}

	return &state, nil
}

// Clear removes the draft. Called after a successful submission.
func (s *DraftService) Clear(ctx context.Context, caregiverID string) error {
	return s.kv.Del(ctx, draftKey(caregiverID))
}

// RememberRecipient stores the last selected recipient as a convenience value.
func (s *DraftService) RememberRecipient(ctx context.Context, caregiverID, recipientID string) error {
	if recipientID == "" {
		return nil
	}
	return s.kv.Set(ctx, lastRecipientKey(caregiverID), recipientID, lastRecipientTTL)
}

// LastRecipient returns the remembered recipient id, or "" when unset.
func (s *DraftService) LastRecipient(ctx context.Context, caregiverID string) (string, error) {
	v, err := s.kv.Get(ctx, lastRecipientKey(caregiverID))
	if err != nil {
		if errors.Is(err, store.ErrMiss) {
			return "", nil
		}
		return "", err
	}
	return v, nil
}
