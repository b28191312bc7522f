package ses

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"medverify/internal/config"
	"medverify/internal/domain"
	"medverify/internal/port"
)

type emailClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesNotifier struct {
	client      emailClient
	fromAddress string
	fromName    string
	toAddresses []string
	reviewURL   string
}

// NewSESNotifier creates a new SES-backed ReviewNotifier.
func NewSESNotifier(cfg *config.NotifyConfig) (port.ReviewNotifier, error) {
	if len(cfg.ToAddresses) == 0 {
		return nil, errors.New("notify.to_addresses is required for the ses provider")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSESNotifier(sesv2.NewFromConfig(awsCfg), cfg), nil
}

func newSESNotifier(client emailClient, cfg *config.NotifyConfig) *sesNotifier {
	return &sesNotifier{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		toAddresses: cfg.ToAddresses,
		reviewURL:   cfg.ReviewURL,
	}
}

func (s *sesNotifier) NotifyReview(ctx context.Context, rec *domain.VerificationRecord) error {
	link := fmt.Sprintf("%s?id=%s", s.reviewURL, url.QueryEscape(rec.ID.String()))
	reasons := ReviewReasons(rec)

	subject := fmt.Sprintf("Label needs review: %s", rec.Filename)
	textBody := fmt.Sprintf("A label verification needs manual review.\n\nFile: %s\nReasons: %s\nConfidence: %.4f\nExpiry: %s\n\nReview it at:\n%s\n",
		rec.Filename, reasons, rec.AvgConf, formatExpiry(rec.FinalExpiry), link)
	htmlBody := buildReviewHTML(rec, reasons, link)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: s.toAddresses,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// ReviewReasons summarizes why a record was flagged.
func ReviewReasons(rec *domain.VerificationRecord) string {
	var reasons []string
	if rec.FinalExpiry == nil {
		reasons = append(reasons, "no expiry found")
	}
	if rec.Mismatch {
		reasons = append(reasons, "printed and code expiry disagree")
	}
	if rec.Tampered {
		reasons = append(reasons, fmt.Sprintf("possible tampering (score %.2f)", rec.TamperScore))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "low recognition confidence")
	}
	return strings.Join(reasons, "; ")
}

func formatExpiry(d *domain.Date) string {
	if d == nil {
		return "unknown"
	}
	return d.String()
}

func buildReviewHTML(rec *domain.VerificationRecord, reasons, link string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Label needs review</h2>
  <p><strong>File:</strong> %s</p>
  <p><strong>Reasons:</strong> %s</p>
  <p><strong>Confidence:</strong> %.4f</p>
  <p><strong>Expiry:</strong> %s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open Review</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">MedVerify - Label Verification</p>
</body>
</html>`, html.EscapeString(rec.Filename), html.EscapeString(reasons), rec.AvgConf,
		formatExpiry(rec.FinalExpiry), html.EscapeString(link))
}
