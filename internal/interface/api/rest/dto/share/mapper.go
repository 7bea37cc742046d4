package share

import (
	"quickdrop-api/internal/application/ports"
	fileDTO "quickdrop-api/internal/interface/api/rest/dto/share_file"
)

func ToResponseShare(view ports.ShareView) Response {
	var r = Response{
		Code:      view.Share.Code,
		TextData:  view.Share.TextData,
		CreatedAt: view.Share.CreatedAt,
		ExpiresAt: view.Share.ExpiresAt,
		Files:     fileDTO.ToResponseFiles(view.Files),
	}

	return r
}
