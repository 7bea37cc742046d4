package share_file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		UUID      uuid.UUID `json:"uuid"`
		FileName  string    `json:"file_name"`
		MimeType  string    `json:"mime_type"`
		FileSize  int64     `json:"file_size"`
		URL       string    `json:"url"`
		CreatedAt time.Time `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
)
