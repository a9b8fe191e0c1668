package ports

import "github.com/MistByteX/predictor/internal/domain"

// HistoryStore persists prediction records.
type HistoryStore interface {
	Append(rec domain.PredictionRecord) (id string, err error)
	// List returns records oldest first; limit > 0 keeps the newest N.
	List(limit int) ([]domain.PredictionRecord, error)
	Get(id string) (domain.PredictionRecord, error)
}
