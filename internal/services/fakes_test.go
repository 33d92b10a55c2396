package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

var errFake = errors.New("fake failure")

// ---------- repositories ----------

type fakeScheduleRepo struct {
	items   []db_models.ScheduledNotification
	findErr error
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *db_models.ScheduledNotification) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.items = append(f.items, *s)
	return nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, s *db_models.ScheduledNotification) error {
	for i := range f.items {
		if f.items[i].ID == s.ID {
			f.items[i] = *s
			return nil
		}
	}
	return errFake
}

func (f *fakeScheduleRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]db_models.ScheduledNotification, error) {
	var out []db_models.ScheduledNotification
	for _, s := range f.items {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) FindByIdForUser(_ context.Context, id, userID uuid.UUID) (*db_models.ScheduledNotification, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScheduleRepo) Toggle(_ context.Context, id, userID uuid.UUID) (*db_models.ScheduledNotification, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].IsActive = !f.items[i].IsActive
			s := f.items[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) FindDue(_ context.Context, clock string) ([]db_models.ScheduledNotification, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []db_models.ScheduledNotification
	for _, s := range f.items {
		if s.Time == clock && s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []db_models.Notification
	failFor map[uuid.UUID]bool
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *db_models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[n.UserID] {
		return errFake
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) ListRecent(context.Context, uuid.UUID, int) ([]db_models.Notification, error) {
	return f.created, nil
}

func (f *fakeNotificationRepo) MarkRead(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeNotificationRepo) MarkAllRead(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeNotificationRepo) Delete(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeNotificationRepo) DeleteAll(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeAccountRepo struct {
	accounts []db_models.Account
}

func (f *fakeAccountRepo) Insert(_ context.Context, a *db_models.Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.accounts = append(f.accounts, *a)
	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, a *db_models.Account) error {
	for i := range f.accounts {
		if f.accounts[i].ID == a.ID {
			f.accounts[i] = *a
			return nil
		}
	}
	return errFake
}

func (f *fakeAccountRepo) FindById(_ context.Context, id uuid.UUID) (*db_models.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].ID == id {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*db_models.Account, error) {
	for i := range f.accounts {
		if f.accounts[i].Email == email {
			a := f.accounts[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) ListAll(context.Context) ([]db_models.Account, error) {
	return f.accounts, nil
}

func (f *fakeAccountRepo) RecordLogin(context.Context, *db_models.LoginEvent) error {
	return nil
}

// ---------- outbound channels ----------

type sentMail struct {
	To, Subject, Label, Clock string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]bool
}

func (f *fakeMailer) record(m sentMail) error {
	if f.failFor[m.To] {
		return errFake
	}
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeMailer) SendNotification(to, subject, _ string) error {
	return f.record(sentMail{To: to, Subject: subject})
}

func (f *fakeMailer) SendReminder(to, _, label, clock string) error {
	return f.record(sentMail{To: to, Subject: "reminder", Label: label, Clock: clock})
}

func (f *fakeMailer) SendTestEmail(to, _ string) error {
	return f.record(sentMail{To: to, Subject: "test"})
}

type sentText struct {
	To, Body string
}

type fakeSMS struct {
	sent    []sentText
	failFor map[string]bool
}

func (f *fakeSMS) SendSMS(_ context.Context, to, body string) error {
	if f.failFor[to] {
		return errFake
	}
	f.sent = append(f.sent, sentText{To: to, Body: body})
	return nil
}

type fakePush struct {
	tokens []string
}

func (f *fakePush) SendPush(_ context.Context, token, _, _ string) error {
	f.tokens = append(f.tokens, token)
	return nil
}

// ---------- AI ----------

type fakeLLM struct {
	reply    string
	err      error
	requests []utils.LLMRequest
}

func (f *fakeLLM) Complete(_ context.Context, req utils.LLMRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

type stubAnalyzer struct {
	result *db_models.TriageResult
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(context.Context, TriageInput) (*db_models.TriageResult, error) {
	s.calls++
	return s.result, s.err
}
