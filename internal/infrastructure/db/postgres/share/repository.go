package share

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) share.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateShare(ctx context.Context, req share.Share) (*share.Share, error) {
	s := new(Share)

	err := r.db.QueryRow(
		ctx,
		InsertShare,
		req.Code, req.TextData, req.Password, req.ExpiresAt,
	).Scan(
		&s.ID,
		&s.UUID,
		&s.Code,
		&s.TextData,
		&s.Password,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, share.ErrCodeTaken
		}
		return nil, err
	}

	return fromDBModel(s), err
}

func (r *Repository) FetchByCode(ctx context.Context, code string) (*share.Share, error) {
	return r.fetchOne(ctx, SelectShareByCode, code)
}

func (r *Repository) FetchPublicByCode(ctx context.Context, code string) (*share.Share, error) {
	return r.fetchOne(ctx, SelectPublicShareByCode, code)
}

func (r *Repository) fetchOne(ctx context.Context, query, code string) (*share.Share, error) {
	s := new(Share)
	err := r.db.QueryRow(ctx, query, code).Scan(
		&s.ID,
		&s.UUID,
		&s.Code,
		&s.TextData,
		&s.Password,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(s), err
}

func (r *Repository) UpdateText(ctx context.Context, uuid share.UUID, text string) (*share.Share, error) {
	s := new(Share)

	err := r.db.QueryRow(ctx, UpdateShareText, text, uuid).Scan(
		&s.ID,
		&s.UUID,
		&s.Code,
		&s.TextData,
		&s.Password,
		&s.CreatedAt,
		&s.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(s), err
}

func (r *Repository) FetchExpired(ctx context.Context, now time.Time) (share.Shares, error) {
	rows, err := r.db.Query(ctx, SelectExpiredShares, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ss Shares
	for rows.Next() {
		s := new(Share)

		if err = rows.Scan(
			&s.ID,
			&s.UUID,
			&s.Code,
			&s.TextData,
			&s.Password,
			&s.CreatedAt,
			&s.ExpiresAt,
		); err != nil {
			return nil, err
		}

		ss = append(ss, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ss), nil
}

func (r *Repository) DeleteShare(ctx context.Context, uuid share.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteShareByUUID, uuid)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
