package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alerta360-backend/internal/domain"
	alerta_errors "alerta360-backend/pkg/errors"
)

type PostgresIncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) IncidentRepository {
	return &PostgresIncidentRepository{db: db}
}

func (r *PostgresIncidentRepository) Create(ctx context.Context, i *domain.Incident) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *PostgresIncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Incident, error) {
	var i domain.Incident
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Incident{}, alerta_errors.ErrNotFound
		}
		return domain.Incident{}, err
	}
	return i, nil
}

func (r *PostgresIncidentRepository) GetAll(ctx context.Context) ([]domain.Incident, error) {
	var incidents []domain.Incident
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *PostgresIncidentRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.Incident, error) {
	var incidents []domain.Incident
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&incidents).Error
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

func (r *PostgresIncidentRepository) Update(ctx context.Context, i domain.Incident) error {
	res := r.db.WithContext(ctx).Save(&i)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return alerta_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresIncidentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Incident{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return alerta_errors.ErrNotFound
	}
	return nil
}
