package service

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"softwaresur_backend/internal/events"
	"softwaresur_backend/internal/quotes/repository"
	"softwaresur_backend/internal/quotes/transport"
	"softwaresur_backend/platform/apperr"
	"softwaresur_backend/platform/logger"
	"softwaresur_backend/platform/sanitize"
)

// Repository is the persistence port the service needs. *repository.Repository
// satisfies it; tests plug in an in-memory fake.
type Repository interface {
	NextTrackingNumber(ctx context.Context) (int64, error)
	Create(ctx context.Context, q *repository.QuoteRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.QuoteRequest, error)
	ListAll(ctx context.Context) ([]repository.QuoteRequest, error)
	Update(ctx context.Context, q *repository.QuoteRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListResponseTemplates(ctx context.Context) ([]repository.ResponseTemplate, error)
}

// AdminChecker answers whether a caller may use the back office. Any
// lookup failure must read as "not an admin".
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) bool
}

type Service struct {
	repo     Repository
	admins   AdminChecker
	eventBus events.Bus
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, admins AdminChecker, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		admins:   admins,
		eventBus: eventBus,
		log:      log,
		now:      time.Now,
	}
}

// Submit runs the public intake workflow: sanitize, validate, allocate a
// tracking ID, persist, then announce the new request on the event bus.
// A counter failure downgrades to a fallback tracking ID instead of
// rejecting the submission.
func (s *Service) Submit(ctx context.Context, req transport.SubmitQuoteRequest) (*transport.SubmitQuoteResponse, error) {
	const op = "quotes.Service.Submit"

	req.Name = sanitize.Text(req.Name)
	req.Email = sanitize.Text(req.Email)
	req.ServiceInterest = sanitize.Text(req.ServiceInterest)
	req.Message = sanitize.Text(req.Message)

	if issues := validateSubmission(req); len(issues) > 0 {
		return nil, apperr.Validation("invalid quote request").WithOp(op).WithDetails(map[string]any{"fields": issues})
	}

	trackingID := s.allocateTrackingID(ctx)

	record := &repository.QuoteRequest{
		ID:          uuid.New(),
		TrackingID:  trackingID,
		Name:        req.Name,
		Email:       strings.ToLower(req.Email),
		Message:     req.Message,
		SubmittedAt: s.now().UTC(),
		Status:      transport.StatusPendiente,
	}
	if req.ServiceInterest != "" {
		record.ServiceInterest = &req.ServiceInterest
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, events.QuoteRequestSubmitted{
		BaseEvent:       events.NewBaseEvent(),
		QuoteID:         record.ID,
		TrackingID:      record.TrackingID,
		Name:            record.Name,
		Email:           record.Email,
		ServiceInterest: req.ServiceInterest,
		Message:         record.Message,
	})

	return &transport.SubmitQuoteResponse{ID: record.ID, TrackingID: record.TrackingID}, nil
}

// GetPublicStatus returns the customer-facing view of a single request.
func (s *Service) GetPublicStatus(ctx context.Context, id uuid.UUID) (*transport.PublicQuoteStatusResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &transport.PublicQuoteStatusResponse{
		TrackingID:    record.TrackingID,
		Status:        record.Status,
		SubmittedAt:   record.SubmittedAt,
		AdminResponse: record.AdminResponse,
		QuotedAmount:  record.QuotedAmount,
		RespondedAt:   record.RespondedAt,
	}, nil
}

// List returns quote requests for the back office, newest first, narrowed
// by the optional status and free-text filter.
func (s *Service) List(ctx context.Context, callerID uuid.UUID, filter transport.ListFilter) ([]transport.QuoteRequestResponse, error) {
	const op = "quotes.Service.List"

	if err := s.requireAdmin(ctx, op, callerID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.QuoteRequestResponse, 0, len(records))
	for _, r := range records {
		if !matchesFilter(&r, filter) {
			continue
		}
		out = append(out, toResponse(&r))
	}
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, callerID, id uuid.UUID) (*transport.QuoteRequestResponse, error) {
	const op = "quotes.Service.GetByID"

	if err := s.requireAdmin(ctx, op, callerID); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(record)
	return &resp, nil
}

// Update applies a partial admin edit. Setting the status to "respondido"
// for the first time stamps respondedAt with the current server time
// unless the caller supplied one; an already-set timestamp is kept.
func (s *Service) Update(ctx context.Context, callerID, id uuid.UUID, req transport.UpdateQuoteRequest) (*transport.QuoteRequestResponse, error) {
	const op = "quotes.Service.Update"

	if err := s.requireAdmin(ctx, op, callerID); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.AdminResponse != nil {
		response := sanitize.Text(*req.AdminResponse)
		record.AdminResponse = &response
	}
	if req.QuotedAmount != nil {
		record.QuotedAmount = req.QuotedAmount
	}
	if req.AttachmentName != nil {
		name := sanitize.Text(*req.AttachmentName)
		record.AttachmentName = &name
	}
	if req.InternalNotes != nil {
		notes := sanitize.Text(*req.InternalNotes)
		record.InternalNotes = &notes
	}
	switch {
	case req.RespondedAt != nil:
		record.RespondedAt = req.RespondedAt
	case record.Status == transport.StatusRespondido && record.RespondedAt == nil:
		ts := s.now().UTC()
		record.RespondedAt = &ts
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	s.publish(ctx, events.QuoteRequestUpdated{
		BaseEvent:  events.NewBaseEvent(),
		QuoteID:    record.ID,
		TrackingID: record.TrackingID,
		Status:     record.Status,
		ActorID:    callerID,
	})

	resp := toResponse(record)
	return &resp, nil
}

// Delete removes a quote request. Removing an ID that no longer exists
// succeeds, so retried deletes stay quiet.
func (s *Service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	const op = "quotes.Service.Delete"

	if err := s.requireAdmin(ctx, op, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.QuoteRequestDeleted{
		BaseEvent: events.NewBaseEvent(),
		QuoteID:   id,
		ActorID:   callerID,
	})
	return nil
}

func (s *Service) ListResponseTemplates(ctx context.Context, callerID uuid.UUID) ([]transport.ResponseTemplateResponse, error) {
	const op = "quotes.Service.ListResponseTemplates"

	if err := s.requireAdmin(ctx, op, callerID); err != nil {
		return nil, err
	}

	templates, err := s.repo.ListResponseTemplates(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]transport.ResponseTemplateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, transport.ResponseTemplateResponse{ID: t.ID, Title: t.Title, Content: t.Content})
	}
	return out, nil
}

func (s *Service) allocateTrackingID(ctx context.Context) string {
	n, err := s.repo.NextTrackingNumber(ctx)
	if err != nil {
		s.log.Error("tracking counter unavailable, using fallback ID", "error", err)
		return fallbackTrackingID(s.now())
	}
	return formatTrackingID(n)
}

func (s *Service) requireAdmin(ctx context.Context, op string, callerID uuid.UUID) error {
	if callerID == uuid.Nil || !s.admins.IsAdmin(ctx, callerID) {
		return apperr.Forbidden("admin privileges required").WithOp(op)
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, event)
}

func validateSubmission(req transport.SubmitQuoteRequest) []string {
	var issues []string
	if utf8.RuneCountInString(req.Name) < 2 {
		issues = append(issues, "name must be at least 2 characters")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		issues = append(issues, "email must be a valid address")
	}
	if n := utf8.RuneCountInString(req.Message); n < 10 || n > 500 {
		issues = append(issues, "message must be between 10 and 500 characters")
	}
	return issues
}

func matchesFilter(r *repository.QuoteRequest, filter transport.ListFilter) bool {
	if filter.Status != "" && filter.Status != "todos" && r.Status != filter.Status {
		return false
	}
	if filter.Search == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	if needle == "" {
		return true
	}
	haystacks := []string{r.Name, r.Email, r.Message, r.TrackingID}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func toResponse(r *repository.QuoteRequest) transport.QuoteRequestResponse {
	return transport.QuoteRequestResponse{
		ID:              r.ID,
		TrackingID:      r.TrackingID,
		Name:            r.Name,
		Email:           r.Email,
		ServiceInterest: r.ServiceInterest,
		Message:         r.Message,
		SubmittedAt:     r.SubmittedAt,
		Status:          r.Status,
		AdminResponse:   r.AdminResponse,
		QuotedAmount:    r.QuotedAmount,
		AttachmentName:  r.AttachmentName,
		RespondedAt:     r.RespondedAt,
		InternalNotes:   r.InternalNotes,
	}
}
