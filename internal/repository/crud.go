package repository

import (
	"context"
	"errors"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/patch"
)

// ErrInvalidRequest is returned when an update carries no updatable field.
var ErrInvalidRequest = errors.New("no valid fields to update")

// ErrNotFound is returned by credential lookups that match no row.
var ErrNotFound = errors.New("record not found")

const newestFirst = "created_at DESC, id DESC"

func updateByID(ctx context.Context, store *database.Store, model interface{}, id uint, p *patch.Patch) error {
	updates, err := p.Updates()
	if err != nil {
		return ErrInvalidRequest
	}

	db, err := store.Conn(ctx)
	if err != nil {
		return err
	}

	return db.Model(model).Where("id = ?", id).Updates(updates).Error
}

func deleteByID(ctx context.Context, store *database.Store, model interface{}, id uint) error {
	db, err := store.Conn(ctx)
	if err != nil {
		return err
	}

	return db.Where("id = ?", id).Delete(model).Error
}

func create(ctx context.Context, store *database.Store, value interface{}) error {
	db, err := store.Conn(ctx)
	if err != nil {
		return err
	}

	return db.Create(value).Error
}
