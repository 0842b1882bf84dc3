package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/imtti/imtti-api/internal/database"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	store := database.NewStore(db, "sqlite", testLogger())
	require.NoError(t, store.Migrate(context.Background(), database.DefaultAdmin{
		Name:     "IMTTI Administrator",
		Email:    "admin@imtti.com",
		Password: "admin123",
	}))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func strPtr(v string) *string { return &v }
