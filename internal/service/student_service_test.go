package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/repository"
)

func TestStudentPassword(t *testing.T) {
	require.Equal(t, "20010405", StudentPassword("2001-04-05"))
	require.Equal(t, "05042001", StudentPassword("05/04/2001"))
	require.Equal(t, "", StudentPassword(""))
}

func TestStudentServiceCreateAppliesDefaults(t *testing.T) {
	store := newTestStore(t)
	svc := NewStudentService(repository.NewStudentRepository(store), testValidator(), nil, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.StudentCreateRequest{
		Name:           "Ravi",
		DateOfBirth:    strPtr("2001-04-05"),
		RegistrationID: strPtr("IMTTI25QWERTY12"),
	})
	require.NoError(t, err)
	require.Equal(t, models.DefaultCourse, created.Course)
	require.Equal(t, models.StudentStatusRegistered, created.Status)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "20010405", *rows[0].Password)
	require.Nil(t, rows[0].CenterName)
}

func TestStudentServiceRejectsMalformedDate(t *testing.T) {
	store := newTestStore(t)
	svc := NewStudentService(repository.NewStudentRepository(store), testValidator(), nil, testLogger())

	_, err := svc.Create(context.Background(), dto.StudentCreateRequest{Name: "Ravi", DateOfBirth: strPtr("05-04-2001")})
	require.Error(t, err)
}

func TestStudentServiceUpdateKeepsUntouchedFields(t *testing.T) {
	store := newTestStore(t)
	svc := NewStudentService(repository.NewStudentRepository(store), testValidator(), nil, testLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.StudentCreateRequest{Name: "Ravi", Phone: strPtr("999"), DateOfBirth: strPtr("2001-04-05")})
	require.NoError(t, err)

	var update dto.StudentUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"status":"active","date_of_birth":"2001-05-04"}`), &update))
	require.NoError(t, svc.Update(ctx, created.ID, update))

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "active", rows[0].Status)
	require.Equal(t, "2001-05-04", *rows[0].DateOfBirth)
	require.Equal(t, "20010504", *rows[0].Password)
	require.Equal(t, "999", *rows[0].Phone)
	require.Equal(t, "Ravi", rows[0].Name)
}
