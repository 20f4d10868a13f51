package storage

import (
	"ctp/internal/config"
	"ctp/internal/domain"
)

// Storage persists and loads run summaries (e.g. for the view command).
type Storage interface {
	Save(summary *domain.RunSummary) error
	Load() (*domain.RunSummary, error)
}

// JSONStorage stores the run summary as JSON under the scratch dir.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's summary path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
