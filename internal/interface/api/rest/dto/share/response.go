package share

import (
	"time"

	fileDTO "quickdrop-api/internal/interface/api/rest/dto/share_file"
)

type (
	CreateResponse struct {
		Code        string `json:"code"`
		Message     string `json:"message"`
		FilesCount  int    `json:"files_count"`
		HasTextData bool   `json:"has_text_data"`
	}

	Response struct {
		Code      string        `json:"code"`
		TextData  *string       `json:"text_data"`
		CreatedAt time.Time     `json:"created_at"`
		ExpiresAt *time.Time    `json:"expires_at"`
		Files     fileDTO.Files `json:"files"`
	}
)
