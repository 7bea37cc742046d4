package share_file

const (
	InsertFile = `
		INSERT INTO share_files (share_uuid, file_name, storage_key, file_size, mime_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
		  id, uuid, share_uuid, file_name, storage_key, file_size, mime_type, created_at
	`
	SelectFilesByShare = `
		SELECT id, uuid, share_uuid, file_name, storage_key, file_size, mime_type, created_at
		FROM share_files
		WHERE share_uuid = $1
		ORDER BY id
	`
	SelectFileByStorageKey = `
		SELECT f.id, f.uuid, f.share_uuid, f.file_name, f.storage_key, f.file_size, f.mime_type, f.created_at, s.expires_at
		FROM share_files f
		JOIN shares s ON s.uuid = f.share_uuid
		WHERE f.storage_key = $1
	`
	DeleteFileByStorageKey = `DELETE FROM share_files WHERE storage_key = $1`
	DeleteFilesByShare     = `DELETE FROM share_files WHERE share_uuid = $1`
)
