package repository

import (
	"context"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/models"
)

// MarkRepository persists subject marks.
type MarkRepository interface {
	List(ctx context.Context) ([]models.MarkRow, error)
	Create(ctx context.Context, mark *models.Mark) error
	Delete(ctx context.Context, id uint) error
}

type markRepository struct {
	store *database.Store
}

// NewMarkRepository constructs the mark repository.
func NewMarkRepository(store *database.Store) MarkRepository {
	return &markRepository{store: store}
}

func (r *markRepository) List(ctx context.Context) ([]models.MarkRow, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.MarkRow, 0)
	err = db.Table("marks AS m").
		Select("m.*, s.name AS student_name, c.name AS center_name").
		Joins("LEFT JOIN students s ON m.student_id = s.id").
		Joins("LEFT JOIN centers c ON m.center_id = c.id").
		Order("m.created_at DESC, m.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *markRepository) Create(ctx context.Context, mark *models.Mark) error {
	return create(ctx, r.store, mark)
}

func (r *markRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.store, &models.Mark{}, id)
}
