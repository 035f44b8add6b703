package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"softwaresur_backend/internal/events"
	"softwaresur_backend/internal/quotes/repository"
	"softwaresur_backend/internal/quotes/transport"
	"softwaresur_backend/platform/apperr"
	"softwaresur_backend/platform/logger"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	mu          sync.Mutex
	counter     int64
	records     map[uuid.UUID]repository.QuoteRequest
	templates   []repository.ResponseTemplate
	failCounter bool
	failCreate  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[uuid.UUID]repository.QuoteRequest)}
}

func (f *fakeRepo) NextTrackingNumber(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCounter {
		return 0, errors.New("counter unavailable")
	}
	f.counter++
	return f.counter, nil
}

func (f *fakeRepo) Create(ctx context.Context, q *repository.QuoteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return errors.New("insert failed")
	}
	f.records[q.ID] = *q
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.QuoteRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.records[id]
	if !ok {
		return nil, apperr.NotFound("quote request not found")
	}
	copied := q
	return &copied, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]repository.QuoteRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.QuoteRequest, 0, len(f.records))
	for _, q := range f.records {
		out = append(out, q)
	}
	// Newest first, matching the SQL ordering.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].SubmittedAt.After(out[i].SubmittedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, q *repository.QuoteRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[q.ID]; !ok {
		return apperr.NotFound("quote request not found")
	}
	f.records[q.ID] = *q
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeRepo) ListResponseTemplates(ctx context.Context) ([]repository.ResponseTemplate, error) {
	return f.templates, nil
}

// fakeAdmins treats a fixed set of IDs as admins.
type fakeAdmins struct {
	ids map[uuid.UUID]bool
}

func (f *fakeAdmins) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	return f.ids[userID]
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func (b *recordingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

func newTestService(repo *fakeRepo, adminID uuid.UUID) (*Service, *recordingBus) {
	bus := &recordingBus{}
	admins := &fakeAdmins{ids: map[uuid.UUID]bool{adminID: true}}
	svc := NewService(repo, admins, bus, logger.New("test"))
	return svc, bus
}

func validSubmission() transport.SubmitQuoteRequest {
	return transport.SubmitQuoteRequest{
		Name:            "Ana Pérez",
		Email:           "ana@example.com",
		ServiceInterest: "Desarrollo Web",
		Message:         "Necesito una cotización para mi sitio web corporativo.",
	}
}

func TestSubmit_AssignsSequentialTrackingIDs(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, uuid.New())
	ctx := context.Background()

	first, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if first.TrackingID != "SS-000001" {
		t.Fatalf("expected SS-000001, got %q", first.TrackingID)
	}

	second, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if second.TrackingID != "SS-000002" {
		t.Fatalf("expected SS-000002, got %q", second.TrackingID)
	}

	stored, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("stored record missing: %v", err)
	}
	if stored.Status != transport.StatusPendiente {
		t.Fatalf("new request status = %q, want pendiente", stored.Status)
	}
	if stored.SubmittedAt.IsZero() {
		t.Fatalf("submittedAt not set")
	}
	if stored.RespondedAt != nil {
		t.Fatalf("respondedAt must be unset on intake")
	}
}

func TestSubmit_RejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*transport.SubmitQuoteRequest)
	}{
		{"short name", func(r *transport.SubmitQuoteRequest) { r.Name = "A" }},
		{"bad email", func(r *transport.SubmitQuoteRequest) { r.Email = "not-an-email" }},
		{"short message", func(r *transport.SubmitQuoteRequest) { r.Message = "hola" }},
		{"long message", func(r *transport.SubmitQuoteRequest) { r.Message = strings.Repeat("x", 501) }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc, _ := newTestService(repo, uuid.New())

			req := validSubmission()
			c.mutate(&req)

			_, err := svc.Submit(context.Background(), req)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.records) != 0 {
				t.Fatalf("invalid submission must not be stored")
			}
		})
	}
}

func TestSubmit_CounterFailureUsesFallbackID(t *testing.T) {
	repo := newFakeRepo()
	repo.failCounter = true
	svc, _ := newTestService(repo, uuid.New())

	result, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit must survive a counter failure: %v", err)
	}
	if !strings.HasPrefix(result.TrackingID, "SS-ERR-") {
		t.Fatalf("expected fallback tracking ID, got %q", result.TrackingID)
	}
	if len(repo.records) != 1 {
		t.Fatalf("submission must still be stored with the fallback ID")
	}
}

func TestSubmit_CreateFailureReturnsError(t *testing.T) {
	repo := newFakeRepo()
	repo.failCreate = true
	svc, bus := newTestService(repo, uuid.New())

	if _, err := svc.Submit(context.Background(), validSubmission()); err == nil {
		t.Fatalf("expected error when persistence fails")
	}
	if len(bus.published()) != 0 {
		t.Fatalf("no event may be published for a failed submission")
	}
}

func TestSubmit_ConcurrentSubmissionsGetUniqueIDs(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, uuid.New())

	const n = 25
	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Submit(context.Background(), validSubmission())
			if err != nil {
				t.Errorf("submit failed: %v", err)
				return
			}
			ids <- result.TrackingID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate tracking ID %q", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d unique IDs, got %d", n, len(seen))
	}
}

func TestSubmit_PublishesSubmittedEvent(t *testing.T) {
	repo := newFakeRepo()
	svc, bus := newTestService(repo, uuid.New())

	result, err := svc.Submit(context.Background(), validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	published := bus.published()
	if len(published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(published))
	}
	ev, ok := published[0].(events.QuoteRequestSubmitted)
	if !ok {
		t.Fatalf("expected QuoteRequestSubmitted, got %T", published[0])
	}
	if ev.TrackingID != result.TrackingID {
		t.Fatalf("event tracking ID %q, want %q", ev.TrackingID, result.TrackingID)
	}
}

func TestList_RequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, uuid.New())

	_, err := svc.List(context.Background(), uuid.New(), transport.ListFilter{})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}

	_, err = svc.List(context.Background(), uuid.Nil, transport.ListFilter{})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for anonymous caller, got %v", err)
	}
}

func TestList_FiltersByStatusAndSearch(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)
	ctx := context.Background()

	first, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	req := validSubmission()
	req.Name = "Carlos Gómez"
	req.Email = "carlos@example.com"
	if _, err := svc.Submit(ctx, req); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	status := transport.StatusRevisado
	if _, err := svc.Update(ctx, adminID, first.ID, transport.UpdateQuoteRequest{Status: &status}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	byStatus, err := svc.List(ctx, adminID, transport.ListFilter{Status: transport.StatusRevisado})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != first.ID {
		t.Fatalf("status filter returned wrong records: %+v", byStatus)
	}

	bySearch, err := svc.List(ctx, adminID, transport.ListFilter{Search: "carlos"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].Email != "carlos@example.com" {
		t.Fatalf("search filter returned wrong records: %+v", bySearch)
	}

	todos, err := svc.List(ctx, adminID, transport.ListFilter{Status: "todos"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf(`status "todos" must match everything, got %d records`, len(todos))
	}
}

func TestUpdate_SetsRespondedAtOnFirstResponse(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	status := transport.StatusRespondido
	updated, err := svc.Update(ctx, adminID, created.ID, transport.UpdateQuoteRequest{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.RespondedAt == nil {
		t.Fatalf("respondedAt must be stamped on first transition to respondido")
	}

	firstStamp := *updated.RespondedAt
	again, err := svc.Update(ctx, adminID, created.ID, transport.UpdateQuoteRequest{Status: &status})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if again.RespondedAt == nil || !again.RespondedAt.Equal(firstStamp) {
		t.Fatalf("respondedAt changed on repeat update: %v != %v", again.RespondedAt, firstStamp)
	}
}

func TestUpdate_HonorsExplicitRespondedAt(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	explicit := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	status := transport.StatusRespondido
	updated, err := svc.Update(ctx, adminID, created.ID, transport.UpdateQuoteRequest{
		Status:      &status,
		RespondedAt: &explicit,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.RespondedAt == nil || !updated.RespondedAt.Equal(explicit) {
		t.Fatalf("explicit respondedAt not honored: got %v", updated.RespondedAt)
	}
}

func TestUpdate_AppliesPartialFields(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	response := "Gracias por su solicitud, adjuntamos la propuesta."
	amount := 1500.50
	updated, err := svc.Update(ctx, adminID, created.ID, transport.UpdateQuoteRequest{
		AdminResponse: &response,
		QuotedAmount:  &amount,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != transport.StatusPendiente {
		t.Fatalf("status must be untouched by a partial update, got %q", updated.Status)
	}
	if updated.AdminResponse == nil || *updated.AdminResponse != response {
		t.Fatalf("adminResponse not applied: %v", updated.AdminResponse)
	}
	if updated.QuotedAmount == nil || *updated.QuotedAmount != amount {
		t.Fatalf("quotedAmount not applied: %v", updated.QuotedAmount)
	}
	if updated.RespondedAt != nil {
		t.Fatalf("respondedAt must stay unset while status is not respondido")
	}
}

func TestUpdate_UnknownIDReturnsNotFound(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)

	status := transport.StatusCerrado
	_, err := svc.Update(context.Background(), adminID, uuid.New(), transport.UpdateQuoteRequest{Status: &status})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdate_RequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	status := transport.StatusCerrado
	_, err = svc.Update(ctx, uuid.New(), created.ID, transport.UpdateQuoteRequest{Status: &status})
	if !apperr.Is(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	adminID := uuid.New()
	svc, _ := newTestService(repo, adminID)
	ctx := context.Background()

	created, err := svc.Submit(ctx, validSubmission())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.Delete(ctx, adminID, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, adminID, created.ID); err != nil {
		t.Fatalf("repeated delete must succeed: %v", err)
	}

	if _, err := svc.GetByID(ctx, adminID, created.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSubmit_SanitizesHTMLInput(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, uuid.New())

	req := validSubmission()
	req.Message = "<script>alert(1)</script>Necesito una cotización para mi proyecto."

	result, err := svc.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	stored, err := repo.GetByID(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("stored record missing: %v", err)
	}
	if strings.Contains(stored.Message, "<script>") {
		t.Fatalf("message not sanitized: %q", stored.Message)
	}
}
