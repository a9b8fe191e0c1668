package usecase

import (
	"github.com/MistByteX/predictor/internal/domain"
	"github.com/MistByteX/predictor/internal/ports"
)

type InitHome struct {
	initializer ports.HomeInitializer
}

func NewInitHome(initializer ports.HomeInitializer) *InitHome {
	return &InitHome{initializer: initializer}
}

func (uc *InitHome) Execute(spec domain.HomeSpec, force bool) error {
	if spec.Root == "" {
		return domain.ValidationError("usecase.init_home", "home directory is required")
	}
	return uc.initializer.Init(spec, force)
}
