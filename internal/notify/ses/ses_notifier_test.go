package ses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medverify/internal/config"
	"medverify/internal/domain"
)

type fakeClient struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeClient) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{}, f.err
}

func testNotifyConfig() *config.NotifyConfig {
	return &config.NotifyConfig{
		FromAddress: "noreply@medverify.local",
		FromName:    "MedVerify",
		ToAddresses: []string{"qa@pharmacy.test"},
		ReviewURL:   "https://review.example/verify",
	}
}

func TestSESNotifier_NotifyReview(t *testing.T) {
	client := &fakeClient{}
	n := newSESNotifier(client, testNotifyConfig())
	rec := &domain.VerificationRecord{
		ID:          uuid.MustParse("6f1c2a8e-3b1d-4c7e-9a0f-1234567890ab"),
		Filename:    "label<1>.jpg",
		AvgConf:     0.42,
		NeedsReview: true,
		CreatedAt:   time.Now(),
	}

	require.NoError(t, n.NotifyReview(context.Background(), rec))

	require.NotNil(t, client.input)
	assert.Equal(t, "MedVerify <noreply@medverify.local>", *client.input.FromEmailAddress)
	assert.Equal(t, []string{"qa@pharmacy.test"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "Label needs review: label<1>.jpg", *client.input.Content.Simple.Subject.Data)
	text := *client.input.Content.Simple.Body.Text.Data
	assert.Contains(t, text, "https://review.example/verify?id=6f1c2a8e-3b1d-4c7e-9a0f-1234567890ab")
	assert.Contains(t, text, "no expiry found")
	assert.Contains(t, *client.input.Content.Simple.Body.Html.Data, "label&lt;1&gt;.jpg")
}

func TestSESNotifier_NotifyReview_Error(t *testing.T) {
	n := newSESNotifier(&fakeClient{err: errors.New("throttled")}, testNotifyConfig())

	err := n.NotifyReview(context.Background(), &domain.VerificationRecord{ID: uuid.New()})

	assert.ErrorContains(t, err, "throttled")
}

func TestReviewReasons(t *testing.T) {
	expiry := domain.NewDate(2027, time.January, 1)

	assert.Equal(t, "low recognition confidence", ReviewReasons(&domain.VerificationRecord{FinalExpiry: &expiry}))
	assert.Equal(t, "no expiry found; possible tampering (score 0.73)",
		ReviewReasons(&domain.VerificationRecord{Tampered: true, TamperScore: 0.734}))
	assert.Equal(t, "printed and code expiry disagree",
		ReviewReasons(&domain.VerificationRecord{FinalExpiry: &expiry, Mismatch: true}))
}

func TestNewSESNotifier_RequiresRecipients(t *testing.T) {
	_, err := NewSESNotifier(&config.NotifyConfig{Region: "us-east-1"})

	assert.Error(t, err)
}
