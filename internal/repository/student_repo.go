package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/patch"
)

// StudentRepository persists students.
type StudentRepository interface {
	List(ctx context.Context) ([]models.StudentRow, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id uint, p *patch.Patch) error
	Delete(ctx context.Context, id uint) error
	FindByCredentials(ctx context.Context, registrationID, dateOfBirth string) (models.Student, error)
}

type studentRepository struct {
	store *database.Store
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(store *database.Store) StudentRepository {
	return &studentRepository{store: store}
}

func (r *studentRepository) List(ctx context.Context) ([]models.StudentRow, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]models.StudentRow, 0)
	err = db.Table("students AS s").
		Select("s.*, c.name AS center_name").
		Joins("LEFT JOIN centers c ON s.center_id = c.id").
		Order("s.created_at DESC, s.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return create(ctx, r.store, student)
}

func (r *studentRepository) Update(ctx context.Context, id uint, p *patch.Patch) error {
	return updateByID(ctx, r.store, &models.Student{}, id, p)
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.store, &models.Student{}, id)
}

func (r *studentRepository) FindByCredentials(ctx context.Context, registrationID, dateOfBirth string) (models.Student, error) {
	db, err := r.store.Conn(ctx)
	if err != nil {
		return models.Student{}, err
	}

	var student models.Student
	err = db.Where("registration_id = ? AND date_of_birth = ?", registrationID, dateOfBirth).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, ErrNotFound
	}
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}
