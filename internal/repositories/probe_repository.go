package repositories

import (
	"context"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"gorm.io/gorm"
)

// ProbeRepository writes and reads diagnostic rows
type ProbeRepository interface {
	CreateProbe(ctx context.Context, probe *models.Probe) error
	ListRecent(ctx context.Context, limit int) ([]models.Probe, error)
}

type PostgresProbeRepository struct {
	db *gorm.DB
}

func NewPostgresProbeRepository(db *gorm.DB) *PostgresProbeRepository {
	return &PostgresProbeRepository{db: db}
}

func (r *PostgresProbeRepository) CreateProbe(ctx context.Context, probe *models.Probe) error {
	return r.db.WithContext(ctx).Create(probe).Error
}

func (r *PostgresProbeRepository) ListRecent(ctx context.Context, limit int) ([]models.Probe, error) {
	probes := []models.Probe{}
	err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&probes).Error
	return probes, err
}
