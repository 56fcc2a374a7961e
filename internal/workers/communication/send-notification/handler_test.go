// internal/workers/communication/send-notification/handler_test.go
package sendnotification

import (
	"context"
	"testing"

	"cookmate-backend/internal/common/errors"
	"cookmate-backend/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, params)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{}, nil
}

func TestExecute_SuggestionsReadyEmail(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := NewHandler(DefaultConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		NotificationType: NotificationTypeSuggestionsReady,
		Email:            "asha@example.com",
		Name:             "Asha",
		MealTypes:        []string{"breakfast", "lunch"},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, out.Status)
	require.Len(t, sesMock.inputs, 1)
	assert.Empty(t, snsMock.inputs)

	sent := sesMock.inputs[0]
	assert.Equal(t, []string{"asha@example.com"}, sent.Destination.ToAddresses)
	assert.Equal(t, "Your meal suggestions are ready", *sent.Message.Subject.Data)
	assert.Contains(t, *sent.Message.Body.Text.Data, "breakfast, lunch")
}

func TestExecute_CookDigestGoesOverSMS(t *testing.T) {
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := NewHandler(DefaultConfig(), sesMock, snsMock, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		NotificationType: NotificationTypeCookDigest,
		Phone:            "+911234567890",
		Name:             "Asha",
		CookName:         "Lakshmi",
		MealTypes:        []string{"dinner"},
	})

	require.NoError(t, err)
	assert.Equal(t, StatusSent, out.Status)
	assert.Empty(t, sesMock.inputs)
	require.Len(t, snsMock.inputs, 1)
	assert.Equal(t, "+911234567890", *snsMock.inputs[0].PhoneNumber)
	assert.Contains(t, *snsMock.inputs[0].Message, "Lakshmi")
}

func TestExecute_VerificationEmailCarriesLink(t *testing.T) {
	sesMock := &mockSES{}
	h := NewHandler(DefaultConfig(), sesMock, &mockSNS{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{
		NotificationType: NotificationTypeVerification,
		Email:            "asha@example.com",
		Name:             "Asha",
		VerificationLink: "https://cookmate.app/verify?token=abc",
	})

	require.NoError(t, err)
	require.Len(t, sesMock.inputs, 1)
	assert.Contains(t, *sesMock.inputs[0].Message.Body.Text.Data, "https://cookmate.app/verify?token=abc")
}

func TestExecute_EmailFailure(t *testing.T) {
	sesMock := &mockSES{err: assert.AnError}
	h := NewHandler(DefaultConfig(), sesMock, &mockSNS{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		NotificationType: NotificationTypeSuggestionsReady,
		Email:            "asha@example.com",
		Name:             "Asha",
	})

	require.Error(t, err)
	assert.Equal(t, StatusFailed, out.Status)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
}

func TestExecute_ChannelsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EmailEnabled = false
	cfg.SMSEnabled = false
	h := NewHandler(cfg, &mockSES{}, &mockSNS{}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		NotificationType: NotificationTypeSuggestionsReady,
		Email:            "asha@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, out.Status)
}

func TestExecute_UnknownType(t *testing.T) {
	h := NewHandler(DefaultConfig(), &mockSES{}, &mockSNS{}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{NotificationType: "carrier_pigeon"})

	require.Error(t, err)
}
