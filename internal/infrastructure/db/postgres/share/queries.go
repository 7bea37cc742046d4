package share

const (
	InsertShare = `
		INSERT INTO shares (code, text_data, password, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING
		  id, uuid, code, text_data, password, created_at, expires_at
	`
	SelectShareByCode = `
		SELECT id, uuid, code, text_data, password, created_at, expires_at
		FROM shares
		WHERE code = $1
	`
	SelectPublicShareByCode = `
		SELECT id, uuid, code, text_data, password, created_at, expires_at
		FROM shares
		WHERE code = $1 AND password IS NULL
	`
	UpdateShareText = `
		UPDATE shares
		SET text_data = $1
		WHERE uuid = $2
		RETURNING
		  id, uuid, code, text_data, password, created_at, expires_at
	`
	SelectExpiredShares = `
		SELECT id, uuid, code, text_data, password, created_at, expires_at
		FROM shares
		WHERE expires_at IS NOT NULL AND expires_at < $1
	`
	DeleteShareByUUID = `DELETE FROM shares WHERE uuid = $1`
)
