package transport

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una solicitud de cotización. The status works as a workflow
// tag: any listed value may be assigned from any other, there is no
// enforced transition order.
const (
	StatusPendiente  = "pendiente"
	StatusRevisado   = "revisado"
	StatusRespondido = "respondido"
	StatusCerrado    = "cerrado"
)

// SubmitQuoteRequest is the public intake payload for a new quote request.
type SubmitQuoteRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=200"`
	Email           string `json:"email" validate:"required,email,max=320"`
	ServiceInterest string `json:"serviceInterest" validate:"omitempty,max=200"`
	Message         string `json:"message" validate:"required,min=10,max=500"`
}

// SubmitQuoteResponse confirms intake with the customer-facing tracking ID.
type SubmitQuoteResponse struct {
	ID         uuid.UUID `json:"id"`
	TrackingID string    `json:"trackingId"`
}

// UpdateQuoteRequest carries a partial admin update. Only non-nil fields
// are applied; absent fields keep their stored value.
type UpdateQuoteRequest struct {
	Status         *string    `json:"status" validate:"omitempty,oneof=pendiente revisado respondido cerrado"`
	AdminResponse  *string    `json:"adminResponse" validate:"omitempty,min=10,max=2000"`
	QuotedAmount   *float64   `json:"quotedAmount" validate:"omitempty,gt=0"`
	AttachmentName *string    `json:"attachmentName" validate:"omitempty,max=255"`
	InternalNotes  *string    `json:"internalNotes" validate:"omitempty,max=2000"`
	RespondedAt    *time.Time `json:"respondedAt"`
}

// ListFilter narrows the admin listing. A status of "todos" (or empty)
// matches everything; search matches name, email, message and tracking ID.
type ListFilter struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

// QuoteRequestResponse is the full admin-facing view of a quote request.
type QuoteRequestResponse struct {
	ID              uuid.UUID  `json:"id"`
	TrackingID      string     `json:"trackingId"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	ServiceInterest *string    `json:"serviceInterest,omitempty"`
	Message         string     `json:"message"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	Status          string     `json:"status"`
	AdminResponse   *string    `json:"adminResponse,omitempty"`
	QuotedAmount    *float64   `json:"quotedAmount,omitempty"`
	AttachmentName  *string    `json:"attachmentName,omitempty"`
	RespondedAt     *time.Time `json:"respondedAt,omitempty"`
	InternalNotes   *string    `json:"internalNotes,omitempty"`
}

// PublicQuoteStatusResponse is the reduced view returned to customers
// looking up their own request; internal notes stay internal.
type PublicQuoteStatusResponse struct {
	TrackingID    string     `json:"trackingId"`
	Status        string     `json:"status"`
	SubmittedAt   time.Time  `json:"submittedAt"`
	AdminResponse *string    `json:"adminResponse,omitempty"`
	QuotedAmount  *float64   `json:"quotedAmount,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
}

// ResponseTemplateResponse is a canned reply an admin can start from.
type ResponseTemplateResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
