package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"medverify/internal/config"
	"medverify/internal/dates"
	"medverify/internal/decision"
	"medverify/internal/domain"
	"medverify/internal/extractor"
	"medverify/internal/port"
	"medverify/internal/vision"
)

// MaxStoredTextLen caps the extracted text kept on an audit record, in characters.
const MaxStoredTextLen = 2000

// VerifyInput is the DTO for a single label verification.
type VerifyInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// VerificationService defines the label verification contract.
type VerificationService interface {
	Verify(ctx context.Context, input VerifyInput) (*domain.VerificationVerdict, error)
}

// ReviewEnqueuer accepts verifications that need human review.
type ReviewEnqueuer interface {
	Enqueue(job ReviewJob) bool
}

// VerificationDeps are the collaborators of the verification pipeline.
// Clock defaults to time.Now.
type VerificationDeps struct {
	Recognizer port.TextRecognizer
	Scanner    port.CodeScanner
	Repo       port.VerificationRepository
	Reviews    ReviewEnqueuer
	Clock      func() time.Time
}

type verificationService struct {
	recognizer port.TextRecognizer
	scanner    port.CodeScanner
	repo       port.VerificationRepository
	reviews    ReviewEnqueuer
	fuser      *decision.Fuser
	clock      func() time.Time
	ocrCfg     *config.OCRConfig
	uploadCfg  *config.UploadConfig
}

// NewVerificationService creates a new VerificationService implementation.
func NewVerificationService(
	deps VerificationDeps,
	ocrCfg *config.OCRConfig,
	uploadCfg *config.UploadConfig,
) VerificationService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &verificationService{
		recognizer: deps.Recognizer,
		scanner:    deps.Scanner,
		repo:       deps.Repo,
		reviews:    deps.Reviews,
		fuser:      &decision.Fuser{Threshold: ocrCfg.ConfThreshold, Now: clock},
		clock:      clock,
		ocrCfg:     ocrCfg,
		uploadCfg:  uploadCfg,
	}
}

func (s *verificationService) Verify(ctx context.Context, input VerifyInput) (*domain.VerificationVerdict, error) {
	if !domain.IsAllowedContentType(input.ContentType) {
		return nil, domain.ErrUnsupportedMediaType
	}
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyUpload
	}
	if int64(len(input.Data)) > s.uploadCfg.MaxBytes {
		return nil, domain.ErrFileTooLarge
	}

	planes, err := runCPU(ctx, func() (*vision.Planes, error) {
		img, err := vision.Decode(input.Data, s.uploadCfg.MaxImagePixels)
		if err != nil {
			return nil, err
		}
		return vision.Preprocess(img, vision.ThresholdParams{
			Window: s.ocrCfg.ThresholdWindow,
			Offset: s.ocrCfg.ThresholdOffset,
		})
	})
	if err != nil {
		return nil, err
	}

	recognition, payload, err := s.extract(ctx, planes)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	resolved := dates.Resolve(recognition.Text, payload.RawText, now)
	tamper := vision.AssessTamper(vision.TamperScore(planes.Gray, planes.Thresh), s.ocrCfg.TamperThreshold)
	batch := dates.ExtractBatchCode(recognition.Text)

	verdict := s.fuser.Fuse(decision.Signals{
		AvgConf: recognition.AvgConf,
		Dates:   resolved,
		Tamper:  tamper,
		Batch:   batch,
	})

	rec := &domain.VerificationRecord{
		ID:          uuid.New(),
		Filename:    input.Filename,
		ContentType: input.ContentType,
		AvgConf:     recognition.AvgConf,
		Batch:       batch,
		ExpiryOCR:   resolved.ExpiryFromText,
		ExpiryQR:    resolved.ExpiryFromCode,
		FinalExpiry: resolved.FinalExpiry,
		Mismatch:    resolved.Mismatch,
		Tampered:    tamper.Tampered,
		TamperScore: decision.Round4(tamper.Score),
		Expired:     verdict.Expired,
		NeedsReview: verdict.NeedsReview,
		RawText:     SanitizeText(recognition.Text),
		CreatedAt:   now.UTC(),
	}

	log.Printf("verificationService.Verify: %s (%s) conf=%.4f expiry=%v tampered=%t needs_review=%t",
		rec.ID, input.Filename, verdict.Confidence, domain.DatePtrString(verdict.FinalExpiry),
		verdict.Tampered, verdict.NeedsReview)

	// Side effects must not fail the request or be cut short by the client leaving.
	sideCtx := context.WithoutCancel(ctx)
	if s.repo != nil {
		if err := s.repo.Create(sideCtx, rec); err != nil {
			log.Printf("verificationService.Verify: failed to persist record %s: %v", rec.ID, err)
		}
	}
	if verdict.NeedsReview && s.reviews != nil {
		if !s.reviews.Enqueue(ReviewJob{Record: rec}) {
			log.Printf("verificationService.Verify: review queue full, dropping review job for %s", rec.ID)
		}
	}

	return &verdict, nil
}

// extract runs text and code extraction concurrently under the OCR deadline.
// Code scanning failures degrade to an empty payload; text recognition
// failures and the deadline fail the whole extraction.
func (s *verificationService) extract(ctx context.Context, planes *vision.Planes) (domain.RecognitionResult, domain.CodePayload, error) {
	tctx, cancel := context.WithTimeout(ctx, s.ocrCfg.Timeout)
	defer cancel()

	var (
		recognition domain.RecognitionResult
		payload     domain.CodePayload
	)
	g, gctx := errgroup.WithContext(tctx)
	g.Go(func() error {
		words, err := runCPU(gctx, func() ([]domain.RecognizedWord, error) {
			return s.recognizer.Recognize(gctx, planes.Thresh)
		})
		if err != nil {
			return fmt.Errorf("recognizing text: %w", err)
		}
		recognition = extractor.SummarizeWords(words)
		return nil
	})
	g.Go(func() error {
		p, err := runCPU(gctx, func() (domain.CodePayload, error) {
			return s.scanner.Scan(gctx, planes.Gray)
		})
		if err != nil {
			if gctx.Err() != nil {
				return err
			}
			log.Printf("verificationService.extract: code scan failed, continuing without code: %v", err)
			return nil
		}
		payload = p
		return nil
	})

	if err := g.Wait(); err != nil {
		if ctx.Err() == nil && errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return domain.RecognitionResult{}, domain.CodePayload{}, domain.ErrRecognitionTimeout
		}
		return domain.RecognitionResult{}, domain.CodePayload{}, err
	}
	return recognition, payload, nil
}

// SanitizeText prepares extracted text for storage: NUL bytes become spaces,
// surrounding whitespace is trimmed and the result is cut to MaxStoredTextLen
// characters.
func SanitizeText(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\x00", " "))
	if utf8.RuneCountInString(text) <= MaxStoredTextLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:MaxStoredTextLen])
}

// runCPU runs fn on its own goroutine and returns when it finishes or ctx is
// done, whichever comes first. A canceled fn keeps running to completion in
// the background and its result is discarded.
func runCPU[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}
