package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
	"redviva-data/internal/store"
)

// fakeKV in-memory KV for tests that don't need miniredis.
type fakeKV struct {
	mu        sync.Mutex
	data      map[string]string
	published []string
	failSet   bool
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", store.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if f.failSet {
		return fmt.Errorf("kv down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = value
	return true, nil
}

func (f *fakeKV) Publish(ctx context.Context, channel string, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, payload)
	return nil
}

// fakeReportsRepo records inserts; failInsert simulates a remote rejection.
type fakeReportsRepo struct {
	inserted   []*domain.Report
	failInsert bool
}

func (f *fakeReportsRepo) InsertReport(ctx context.Context, report *domain.Report) (string, error) {
	if f.failInsert {
		return "", fmt.Errorf("remote store rejected the insert")
	}
	f.inserted = append(f.inserted, report)
	return report.ReportID, nil
}

func (f *fakeReportsRepo) GetReport(ctx context.Context, reportID string) (*domain.Report, error) {
	for _, r := range f.inserted {
		if r.ReportID == reportID {
			return r, nil
		}
	}
	return nil, fmt.Errorf("report %w", repository.ErrNotFound)
}

func (f *fakeReportsRepo) ListReports(ctx context.Context, filters repository.ReportFilters, page, size int) ([]*domain.Report, int, error) {
	return f.inserted, len(f.inserted), nil
}

// fakeRecipientsRepo fixed assignment set.
type fakeRecipientsRepo struct {
	assigned map[string]bool // "caregiver/recipient"
}

func (f *fakeRecipientsRepo) GetRecipient(ctx context.Context, recipientID string) (*domain.Recipient, error) {
	if recipientID == "missing" {
		return nil, fmt.Errorf("recipient %w", repository.ErrNotFound)
	}
	return &domain.Recipient{RecipientID: recipientID, FullName: "Test Recipient", Status: "active"}, nil
}

func (f *fakeRecipientsRepo) ListAssignedRecipients(ctx context.Context, caregiverID string) ([]*domain.Recipient, error) {
	return nil, nil
}

func (f *fakeRecipientsRepo) IsAssigned(ctx context.Context, caregiverID, recipientID string) (bool, error) {
	return f.assigned[caregiverID+"/"+recipientID], nil
}

func (f *fakeRecipientsRepo) ListRecipients(ctx context.Context, page, size int) ([]*domain.Recipient, int, error) {
	return nil, 0, nil
}

// fakeAlertsRepo in-memory alert table.
type fakeAlertsRepo struct {
	alerts map[string]*domain.Alert
	nextID int
}

func newFakeAlertsRepo() *fakeAlertsRepo { return &fakeAlertsRepo{alerts: map[string]*domain.Alert{}} }

func (f *fakeAlertsRepo) InsertAlert(ctx context.Context, alert *domain.Alert) (string, error) {
	f.nextID++
	id := fmt.Sprintf("al-%d", f.nextID)
	a := *alert
	a.AlertID = id
	a.Status = domain.AlertOpen
	f.alerts[id] = &a
	return id, nil
}

func (f *fakeAlertsRepo) GetAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	a, ok := f.alerts[alertID]
	if !ok {
		return nil, fmt.Errorf("alert %w", repository.ErrNotFound)
	}
	return a, nil
}

func (f *fakeAlertsRepo) ListAlerts(ctx context.Context, status domain.AlertStatus, page, size int) ([]*domain.Alert, int, error) {
	var out []*domain.Alert
	for _, a := range f.alerts {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (f *fakeAlertsRepo) UpdateAlertStatus(ctx context.Context, alertID string, status domain.AlertStatus, handlerID, notes string) error {
	a, ok := f.alerts[alertID]
	if !ok {
		return fmt.Errorf("alert %w", repository.ErrNotFound)
	}
	a.Status = status
	a.HandledBy = &handlerID
	a.HandlerNotes = notes
	return nil
}

// fakeAuditRepo records entries.
type fakeAuditRepo struct {
	entries []*domain.AuditEntry
}

func (f *fakeAuditRepo) InsertEntry(ctx context.Context, entry *domain.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListEntries(ctx context.Context, filters repository.AuditFilters, page, size int) ([]*domain.AuditEntry, int, error) {
	return f.entries, len(f.entries), nil
}
