package ports

import "github.com/MistByteX/predictor/internal/domain"

// TemplateStore lists, loads and creates prompt templates.
type TemplateStore interface {
	List() ([]domain.TemplateRef, error)
	Get(nameOrPath string) (domain.Template, error)
	Create(name, content string, overwrite bool) (path string, err error)
}
