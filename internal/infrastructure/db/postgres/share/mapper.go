package share

import (
	domain "quickdrop-api/internal/domain/share"
)

func fromDBModel(model *Share) *domain.Share {
	var s = &domain.Share{
		UUID:     model.UUID,
		Code:     model.Code,
		TextData: model.TextData,
		Password: model.Password,

		CreatedAt: model.CreatedAt,
		ExpiresAt: model.ExpiresAt,
	}

	return s
}

func fromDBModels(models *Shares) domain.Shares {
	ss := make(domain.Shares, len(*models))
	for idx, s := range *models {
		ss[idx] = fromDBModel(s)
	}

	return ss
}
