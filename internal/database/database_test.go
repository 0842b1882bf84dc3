package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/imtti/imtti-api/internal/models"
)

func TestMySQLDSN(t *testing.T) {
	dsn, err := MySQLDSN(MySQLConfig{
		Host:     "db.example.com",
		User:     "imtti",
		Password: "s3cret",
		Database: "institute",
		TLS:      "skip-verify",
		Timeout:  10 * time.Second,
	})
	require.NoError(t, err)
	require.Contains(t, dsn, "imtti:s3cret@tcp(db.example.com:3306)/institute")
	require.Contains(t, dsn, "parseTime=true")
	require.Contains(t, dsn, "tls=skip-verify")
	require.Contains(t, dsn, "timeout=10s")
}

func TestMySQLDSNRequiresCredentials(t *testing.T) {
	_, err := MySQLDSN(MySQLConfig{Host: "localhost"})
	require.Error(t, err)
}

func TestDialectorSelectsDriver(t *testing.T) {
	d, err := Dialector("postgres", MySQLConfig{}, "postgres://localhost/imtti")
	require.NoError(t, err)
	require.Equal(t, "postgres", d.Name())

	d, err = Dialector("mysql", MySQLConfig{Host: "h", User: "u", Database: "d"}, "")
	require.NoError(t, err)
	require.Equal(t, "mysql", d.Name())

	_, err = Dialector("oracle", MySQLConfig{}, "")
	require.Error(t, err)

	_, err = Dialector("postgres", MySQLConfig{}, "")
	require.Error(t, err)
}

func TestStoreWithoutConnection(t *testing.T) {
	store := Open(context.Background(), nil, "mysql", Options{}, zerolog.Nop())

	_, err := store.Conn(context.Background())
	require.True(t, errors.Is(err, ErrUnavailable))
	require.False(t, store.Available())
	require.Equal(t, "disconnected", store.Status())
	require.NoError(t, store.Close())

	var missing *Store
	_, err = missing.Conn(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "disconnected", missing.Status())
}

func TestOpenProbesAndMigrates(t *testing.T) {
	store := Open(context.Background(), sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), "sqlite", Options{MaxOpenConns: 2, ProbeTimeout: time.Second}, zerolog.Nop())
	t.Cleanup(func() { _ = store.Close() })
	require.True(t, store.Available())
	require.Equal(t, "connected", store.Status())

	admin := DefaultAdmin{Name: "IMTTI Administrator", Email: "admin@imtti.com", Password: "admin123"}
	require.NoError(t, store.Migrate(context.Background(), admin))
	require.NoError(t, store.Migrate(context.Background(), admin))

	db, err := store.Conn(context.Background())
	require.NoError(t, err)
	var count int64
	require.NoError(t, db.Model(&models.Admin{}).Where("email = ?", admin.Email).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestMigrateWithoutStore(t *testing.T) {
	store := NewStore(nil, "mysql", zerolog.Nop())
	require.ErrorIs(t, store.Migrate(context.Background(), DefaultAdmin{}), ErrUnavailable)
}

func TestConnectRedis(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "", time.Second)
	require.NoError(t, err)
	require.Nil(t, client)

	server := miniredis.RunT(t)
	client, err = ConnectRedis(context.Background(), "redis://"+server.Addr(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, client)
	require.NoError(t, client.Close())

	_, err = ConnectRedis(context.Background(), "://bad", time.Second)
	require.Error(t, err)
}

func TestOpenDoesNotLogMissingRows(t *testing.T) {
	var out bytes.Buffer
	store := Open(context.Background(), sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), "sqlite", Options{ProbeTimeout: time.Second}, zerolog.New(&out))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background(), DefaultAdmin{Name: "IMTTI Administrator", Email: "admin@imtti.com", Password: "admin123"}))

	db, err := store.Conn(context.Background())
	require.NoError(t, err)
	var admin models.Admin
	err = db.Where("email = ?", "nobody@imtti.com").First(&admin).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NotContains(t, out.String(), "record not found")
	require.Contains(t, out.String(), "database connected")
}
