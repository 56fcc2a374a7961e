// internal/workers/communication/send-notification/handler.go
package sendnotification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

// Interfaces for mocking the AWS clients.
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.With(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
	}
}

// Execute delivers one notification over the channels its type calls for.
// The cook digest goes out as SMS only; the others are email.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	subject, body, err := buildMessage(input)
	if err != nil {
		return nil, err
	}

	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	emailSent := false
	smsSent := false

	if h.config.EmailEnabled && input.Email != "" && input.NotificationType != NotificationTypeCookDigest {
		if err := h.sendEmail(ctx, input.Email, subject, body); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"notificationType": input.NotificationType,
				"error":            err.Error(),
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt},
				errors.NewNotificationSendFailedError(input.NotificationType, err)
		}
		emailSent = true
	}

	if h.config.SMSEnabled && input.Phone != "" && input.NotificationType == NotificationTypeCookDigest {
		if err := h.sendSMS(ctx, input.Phone, body); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"notificationType": input.NotificationType,
				"error":            err.Error(),
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt},
				errors.NewNotificationSendFailedError(input.NotificationType, err)
		}
		smsSent = true
	}

	status := StatusDisabled
	if emailSent || smsSent {
		status = StatusSent
	}

	h.logger.Info("notification processed", map[string]interface{}{
		"notificationType": input.NotificationType,
		"status":           status,
	})

	return &Output{NotificationID: notificationID, Status: status, SentAt: sentAt}, nil
}

func buildMessage(input *Input) (subject, body string, err error) {
	switch input.NotificationType {
	case NotificationTypeSuggestionsReady:
		subject = "Your meal suggestions are ready"
		body = fmt.Sprintf("Hi %s, your meal suggestions for %s are ready. Open the app to view recipes, videos and nutrition details.",
			input.Name, strings.Join(input.MealTypes, ", "))
	case NotificationTypeVerification:
		subject = "Verify your CookMate account"
		body = fmt.Sprintf("Hi %s, confirm your email address by opening this link: %s",
			input.Name, input.VerificationLink)
	case NotificationTypeCookDigest:
		subject = ""
		body = fmt.Sprintf("Hi %s, %s has new meal plans for %s. Please check the shared menu.",
			input.CookName, input.Name, strings.Join(input.MealTypes, ", "))
	default:
		return "", "", errors.NewNotificationSendFailedError(input.NotificationType,
			fmt.Errorf("unknown notification type"))
	}
	return subject, body, nil
}

func (h *Handler) sendEmail(ctx context.Context, to, subject, body string) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
				Html: &types.Content{Data: aws.String(body)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	_, err := h.snsClient.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	})
	return err
}
