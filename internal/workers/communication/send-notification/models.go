// internal/workers/communication/send-notification/models.go
package sendnotification

const (
	NotificationTypeSuggestionsReady = "suggestions_ready"
	NotificationTypeVerification     = "verification"
	NotificationTypeCookDigest       = "cook_digest"

	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

type Input struct {
	NotificationType string `json:"notificationType"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Name             string `json:"name,omitempty"`
	CookName         string `json:"cookName,omitempty"`
	MealTypes        []string `json:"mealTypes,omitempty"`
	VerificationLink string `json:"verificationLink,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	SentAt         string `json:"sentAt"`
}
