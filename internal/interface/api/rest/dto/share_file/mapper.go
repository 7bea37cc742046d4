package share_file

import (
	"quickdrop-api/internal/domain/share_file"
)

const downloadPrefix = "/api/v1/files/"

func ToResponseFile(fDomain share_file.File) File {
	var f = File{
		UUID:      fDomain.UUID,
		FileName:  fDomain.FileName,
		MimeType:  fDomain.MimeType,
		FileSize:  fDomain.FileSize,
		URL:       downloadPrefix + fDomain.StorageKey,
		CreatedAt: fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fDomain share_file.Files) Files {
	fs := make(Files, len(fDomain))
	for idx, f := range fDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
