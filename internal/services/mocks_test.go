package services

import (
	"errors"
	"sync"
	"testing"

	"github.com/botpanel/botpanel/internal/activity"
	"github.com/botpanel/botpanel/internal/database"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/notifier"
	"github.com/botpanel/botpanel/internal/tests"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock Activity Logger ---

type MockActivityLogger struct {
	mu        sync.Mutex
	sent      []models.Activity
	criteria  map[string][]string
	records   []models.ActivityRecord
	searchErr error
}

func (m *MockActivityLogger) Send(a models.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, a)
	return nil
}

func (m *MockActivityLogger) Search(criteria map[string][]string) ([]models.ActivityRecord, error) {
	m.criteria = criteria
	return m.records, m.searchErr
}

func (m *MockActivityLogger) Close() error { return nil }

func (m *MockActivityLogger) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, a := range m.sent {
		out = append(out, a.Message)
	}
	return out
}

var _ activity.IActivityLogger = (*MockActivityLogger)(nil)

// --- Mock Notifier ---

type sentNotification struct {
	To       string
	Subject  string
	Template string
	Data     any
}

type MockNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (m *MockNotifier) NotifyFromTemplate(to string, subject string, templateName string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentNotification{To: to, Subject: subject, Template: templateName, Data: data})
	return m.err
}

func (m *MockNotifier) notifications() []sentNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentNotification(nil), m.sent...)
}

var _ notifier.INotifier = (*MockNotifier)(nil)

var errStore = errors.New("store unavailable")

func newSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := tests.NewSQLiteDB(t)
	require.NoError(t, database.Seed(db))
	return db
}
