package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/production-board/internal/domain/board"
	"github.com/BruksfildServices01/production-board/internal/models"
)

type BoardGormRepository struct {
	db *gorm.DB
}

func NewBoardGormRepository(db *gorm.DB) *BoardGormRepository {
	return &BoardGormRepository{db: db}
}

// --------------------------------------------------
// Columns
// --------------------------------------------------

func (r *BoardGormRepository) ListColumns(ctx context.Context) ([]models.Column, error) {
	var cols []models.Column
	if err := r.db.WithContext(ctx).
		Order(`"order" ASC`).
		Find(&cols).Error; err != nil {
		return nil, err
	}
	return cols, nil
}

func (r *BoardGormRepository) CreateColumns(ctx context.Context, cols []models.Column) error {
	if len(cols) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&cols).Error
}

func (r *BoardGormRepository) UpdateColumnOrder(ctx context.Context, id string, order int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Column{}).
		Where("id = ?", id).
		Update("order", order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Projects
// --------------------------------------------------

func (r *BoardGormRepository) ListProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *BoardGormRepository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BoardGormRepository) CreateProject(ctx context.Context, p *models.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BoardGormRepository) UpdateProject(ctx context.Context, p *models.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *BoardGormRepository) UpdateProjectStage(ctx context.Context, id string, stage string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("stage", stage)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BoardGormRepository) DeleteProject(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Project{}).Error
}

// Compile-time check
var _ board.Repository = (*BoardGormRepository)(nil)
