package ports

import "github.com/MistByteX/predictor/internal/domain"

type PersonaLoader interface {
	LoadPersonas() ([]domain.Persona, error)
}
