package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"medverify/internal/domain"
	"medverify/internal/port"
)

const verificationColumns = `id, filename, content_type, avg_conf, batch, expiry_ocr, expiry_qr,
	final_expiry, mismatch, tampered, tamper_score, expired, needs_review, raw_text, created_at`

type verificationRepo struct {
	db *LazyDB
}

// NewVerificationRepo creates a new PostgreSQL-backed VerificationRepository.
func NewVerificationRepo(db *LazyDB) port.VerificationRepository {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Create(ctx context.Context, rec *domain.VerificationRecord) error {
	db, err := r.db.Get(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO verification_results (` + verificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = db.ExecContext(ctx, query,
		rec.ID, rec.Filename, rec.ContentType, rec.AvgConf, rec.Batch,
		rec.ExpiryOCR, rec.ExpiryQR, rec.FinalExpiry,
		rec.Mismatch, rec.Tampered, rec.TamperScore, rec.Expired, rec.NeedsReview,
		rec.RawText, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("verificationRepo.Create: %w", err)
	}
	return nil
}

func (r *verificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.VerificationRecord, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, err
	}

	var rec domain.VerificationRecord
	err = db.GetContext(ctx, &rec,
		"SELECT "+verificationColumns+" FROM verification_results WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("verificationRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *verificationRepo) List(ctx context.Context, filter domain.VerificationFilter) ([]domain.VerificationRecord, int, error) {
	db, err := r.db.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	where, args := buildVerificationFilter(filter)

	var total int
	if err := db.GetContext(ctx, &total, "SELECT COUNT(*) FROM verification_results"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("verificationRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT %s FROM verification_results%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		verificationColumns, where, n+1, n+2)
	args = append(args, filter.Limit, filter.Offset)

	var recs []domain.VerificationRecord
	if err := db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("verificationRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *verificationRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// buildVerificationFilter returns a WHERE clause (with leading space) and its
// positional arguments.
func buildVerificationFilter(filter domain.VerificationFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.NeedsReview != nil {
		args = append(args, *filter.NeedsReview)
		conds = append(conds, fmt.Sprintf("needs_review = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
