package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQuoteNotification = "quotes.notification"

type QuoteNotificationPayload struct {
	QuoteID         string `json:"quoteId"`
	TrackingID      string `json:"trackingId"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ServiceInterest string `json:"serviceInterest,omitempty"`
	Message         string `json:"message"`
}

func NewQuoteNotificationTask(payload QuoteNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteNotification, data), nil
}

func ParseQuoteNotificationPayload(task *asynq.Task) (QuoteNotificationPayload, error) {
	var payload QuoteNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QuoteNotificationPayload{}, err
	}
	return payload, nil
}
