package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/imtti/imtti-api/internal/database"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/patch"
)

func setupTestStore(t *testing.T) (*database.Store, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	store := database.NewStore(db, "sqlite", zerolog.Nop())
	require.NoError(t, store.Migrate(context.Background(), database.DefaultAdmin{}))
	t.Cleanup(func() { _ = store.Close() })
	return store, db
}

func centerIDs(centers []models.Center) []uint {
	ids := make([]uint, 0, len(centers))
	for _, center := range centers {
		ids = append(ids, center.ID)
	}
	return ids
}

func strPtr(v string) *string { return &v }

func uintPtr(v uint) *uint { return &v }

func TestCenterRepositoryListNewestFirst(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCenterRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Center{Name: "Alpha", Email: "a@x.com", Password: "p", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &models.Center{Name: "Beta", Email: "b@x.com", Password: "p", IsActive: true}))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, "Beta", first[0].Name, "expected newest record first")

	second, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, centerIDs(first), centerIDs(second))
}

func TestCenterRepositoryUpdateTouchesOnlyPatchedColumns(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCenterRepository(store)
	ctx := context.Background()

	center := models.Center{Name: "Alpha", Email: "a@x.com", Password: "p", Location: strPtr("Chennai"), Phone: strPtr("123"), IsActive: true}
	require.NoError(t, repo.Create(ctx, &center))

	p := patch.New()
	patch.Add(p, "name", patch.Set("Alpha Prime"))
	patch.Add(p, "phone", patch.Null[string]())
	require.NoError(t, repo.Update(ctx, center.ID, p))

	centers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, centers, 1)
	require.Equal(t, "Alpha Prime", centers[0].Name)
	require.Nil(t, centers[0].Phone)
	require.Equal(t, "Chennai", *centers[0].Location)
	require.True(t, centers[0].IsActive)
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCenterRepository(store)
	ctx := context.Background()

	center := models.Center{Name: "Alpha", Email: "a@x.com", Password: "p", IsActive: true}
	require.NoError(t, repo.Create(ctx, &center))

	err := repo.Update(ctx, center.ID, patch.New())
	require.ErrorIs(t, err, ErrInvalidRequest)

	centers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, center.UpdatedAt.Unix(), centers[0].UpdatedAt.Unix())
}

func TestCenterRepositoryCredentialsRequireActive(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewCenterRepository(store)
	ctx := context.Background()

	center := models.Center{Name: "Alpha", Email: "a@x.com", Password: "p", IsActive: true}
	require.NoError(t, repo.Create(ctx, &center))

	found, err := repo.FindActiveByCredentials(ctx, "a@x.com", "p")
	require.NoError(t, err)
	require.Equal(t, center.ID, found.ID)

	p := patch.New()
	patch.Add(p, "is_active", patch.Set(false))
	require.NoError(t, repo.Update(ctx, center.ID, p))

	_, err = repo.FindActiveByCredentials(ctx, "a@x.com", "p")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStudentRepositoryListJoinsCenterName(t *testing.T) {
	store, _ := setupTestStore(t)
	centers := NewCenterRepository(store)
	students := NewStudentRepository(store)
	ctx := context.Background()

	center := models.Center{Name: "Alpha", Email: "a@x.com", Password: "p", IsActive: true}
	require.NoError(t, centers.Create(ctx, &center))

	require.NoError(t, students.Create(ctx, &models.Student{Name: "Orphan", CenterID: uintPtr(999), Course: models.DefaultCourse, Status: models.StudentStatusRegistered}))
	require.NoError(t, students.Create(ctx, &models.Student{Name: "Ravi", CenterID: &center.ID, RegistrationID: strPtr("IMTTI25ABC"), DateOfBirth: strPtr("2001-04-05"), Course: models.DefaultCourse, Status: models.StudentStatusRegistered}))

	rows, err := students.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Ravi", rows[0].Name)
	require.Equal(t, "Alpha", *rows[0].CenterName)
	require.Equal(t, "Orphan", rows[1].Name)
	require.Nil(t, rows[1].CenterName)

	found, err := students.FindByCredentials(ctx, "IMTTI25ABC", "2001-04-05")
	require.NoError(t, err)
	require.Equal(t, "Ravi", found.Name)

	_, err = students.FindByCredentials(ctx, "IMTTI25ABC", "2001-05-04")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationAndMarkRepositoriesJoinDisplayNames(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	center := models.Center{Name: "Alpha", Email: "a@x.com", Password: "p", IsActive: true}
	require.NoError(t, NewCenterRepository(store).Create(ctx, &center))
	student := models.Student{Name: "Ravi", CenterID: &center.ID, Course: models.DefaultCourse, Status: models.StudentStatusRegistered}
	require.NoError(t, NewStudentRepository(store).Create(ctx, &student))

	applications := NewApplicationRepository(store)
	application := models.Application{
		ApplicationNumber: "APP-1",
		CenterID:          &center.ID,
		Data:              datatypes.JSON(`{"full_name":"Ravi"}`),
		Status:            models.ApplicationStatusPending,
	}
	require.NoError(t, applications.Create(ctx, &application))

	appRows, err := applications.List(ctx)
	require.NoError(t, err)
	require.Len(t, appRows, 1)
	require.Nil(t, appRows[0].StudentName)
	require.Equal(t, "Alpha", *appRows[0].CenterName)
	require.JSONEq(t, `{"full_name":"Ravi"}`, string(appRows[0].Data))

	p := patch.New()
	p.Put("status", "approved")
	require.NoError(t, applications.Update(ctx, application.ID, p))
	appRows, err = applications.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "approved", appRows[0].Status)
	require.JSONEq(t, `{"full_name":"Ravi"}`, string(appRows[0].Data))

	marks := NewMarkRepository(store)
	score := 87.5
	require.NoError(t, marks.Create(ctx, &models.Mark{StudentID: &student.ID, CenterID: &center.ID, Subject: "Montessori Theory", Marks: &score, Grade: strPtr("A")}))
	markRows, err := marks.List(ctx)
	require.NoError(t, err)
	require.Len(t, markRows, 1)
	require.Equal(t, "Ravi", *markRows[0].StudentName)
	require.Equal(t, "Alpha", *markRows[0].CenterName)
	require.Equal(t, 87.5, *markRows[0].Marks)

	require.NoError(t, marks.Delete(ctx, markRows[0].ID))
	markRows, err = marks.List(ctx)
	require.NoError(t, err)
	require.Empty(t, markRows)
}

func TestAdminRepository(t *testing.T) {
	store, _ := setupTestStore(t)
	repo := NewAdminRepository(store)
	ctx := context.Background()

	admin := models.Admin{Name: "Root", Email: "root@imtti.com", Password: "secret"}
	require.NoError(t, repo.Create(ctx, &admin))

	found, err := repo.FindByCredentials(ctx, "root@imtti.com", "secret")
	require.NoError(t, err)
	require.Equal(t, admin.ID, found.ID)

	_, err = repo.FindByCredentials(ctx, "root@imtti.com", "wrong")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, admin.ID))
	admins, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, admins)
}

func TestRepositoriesFailWithoutStore(t *testing.T) {
	store := database.NewStore(nil, "mysql", zerolog.Nop())
	ctx := context.Background()

	_, err := NewCenterRepository(store).List(ctx)
	require.ErrorIs(t, err, database.ErrUnavailable)

	err = NewStudentRepository(store).Create(ctx, &models.Student{Name: "x"})
	require.ErrorIs(t, err, database.ErrUnavailable)

	p := patch.New()
	p.Put("status", "approved")
	err = NewApplicationRepository(store).Update(ctx, 1, p)
	require.ErrorIs(t, err, database.ErrUnavailable)

	err = NewMarkRepository(store).Delete(ctx, 1)
	require.ErrorIs(t, err, database.ErrUnavailable)

	_, err = NewAdminRepository(store).FindByCredentials(ctx, "a", "b")
	require.ErrorIs(t, err, database.ErrUnavailable)
}
