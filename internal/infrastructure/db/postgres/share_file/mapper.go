package share_file

import (
	domain "quickdrop-api/internal/domain/share_file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID:      model.UUID,
		ShareUUID: model.ShareUUID,

		FileName:   model.FileName,
		StorageKey: model.StorageKey,
		FileSize:   model.FileSize,
		MimeType:   model.MimeType,

		CreatedAt: model.CreatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
