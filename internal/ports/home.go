package ports

import "github.com/MistByteX/predictor/internal/domain"

type HomeInitializer interface {
	Init(spec domain.HomeSpec, force bool) error
}
