package share_file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"quickdrop-api/internal/domain/share"
	"quickdrop-api/internal/domain/share_file"
	"quickdrop-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) share_file.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateFile(ctx context.Context, shareUUID share.UUID, req share_file.File) (*share_file.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		shareUUID, req.FileName, req.StorageKey, req.FileSize, req.MimeType,
	).Scan(
		&f.ID,
		&f.UUID,
		&f.ShareUUID,

		&f.FileName,
		&f.StorageKey,
		&f.FileSize,
		&f.MimeType,

		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) FetchByShare(ctx context.Context, shareUUID share.UUID) (share_file.Files, error) {
	rows, err := r.db.Query(ctx, SelectFilesByShare, shareUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.UUID,
			&f.ShareUUID,

			&f.FileName,
			&f.StorageKey,
			&f.FileSize,
			&f.MimeType,

			&f.CreatedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchByStorageKey(ctx context.Context, key string) (*share_file.OwnedFile, error) {
	f := new(File)
	of := new(share_file.OwnedFile)

	err := r.db.QueryRow(ctx, SelectFileByStorageKey, key).Scan(
		&f.ID,
		&f.UUID,
		&f.ShareUUID,

		&f.FileName,
		&f.StorageKey,
		&f.FileSize,
		&f.MimeType,

		&f.CreatedAt,
		&of.ShareExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	of.File = *fromDBModel(f)

	return of, nil
}

func (r *Repository) DeleteByStorageKey(ctx context.Context, key string) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteFileByStorageKey, key)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) DeleteByShare(ctx context.Context, shareUUID share.UUID) error {
	_, err := r.db.Exec(ctx, DeleteFilesByShare, shareUUID)
	return err
}
