package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"logmed-backend/internal/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Notifier delivers push notifications to a profile's device.
type Notifier interface {
	NotifyTaskAssigned(ctx context.Context, token string, task *models.Task) error
}

// FCMService handles Firebase Cloud Messaging
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates a new FCM service instance from a credentials file
func NewFCMService(credentialsFile string) (*FCMService, error) {
	return newFCMService(option.WithCredentialsFile(credentialsFile))
}

// NewFCMServiceFromBase64 creates a new FCM service instance from
// base64-encoded service account JSON.
func NewFCMServiceFromBase64(credentialsBase64 string) (*FCMService, error) {
	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}
	return newFCMService(option.WithCredentialsJSON(credentialsJSON))
}

func newFCMService(opt option.ClientOption) (*FCMService, error) {
	ctx := context.Background()

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// NotifyTaskAssigned tells the responsible profile a task was assigned to them.
func (s *FCMService) NotifyTaskAssigned(ctx context.Context, token string, task *models.Task) error {
	response, err := s.client.Send(ctx, taskAssignedMessage(token, task))
	if err != nil {
		return fmt.Errorf("error sending FCM message: %w", err)
	}

	log.Printf("✅ FCM notification sent successfully: %s", response)
	return nil
}

func taskAssignedMessage(token string, task *models.Task) *messaging.Message {
	body := task.Title
	if task.DueTime != nil && *task.DueTime != "" {
		body = fmt.Sprintf("%s (até %s)", task.Title, *task.DueTime)
	}

	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "Nova tarefa atribuída",
			Body:  body,
		},
		Data: map[string]string{
			"type":     "task_assigned",
			"task_id":  task.ID,
			"priority": string(task.Priority),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
		Webpush: &messaging.WebpushConfig{
			Headers: map[string]string{"Urgency": "high"},
		},
	}
}
