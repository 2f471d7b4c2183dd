package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumns = []string{"id", "name", "description", "created_at", "updated_at"}

func TestCategoryService_List(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories` ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows(categoryColumns).
			AddRow(2, "Food", "", time.Now(), time.Now()).
			AddRow(1, "Housing", "Rent", time.Now(), time.Now()))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Food", list[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryService_Get_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories` WHERE `categories`.`id` = \\?").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	_, err := svc.Get(context.Background(), 99)
	require.True(t, IsNotFound(err))
	assert.Equal(t, "category not found", err.Error())
}

func TestCategoryService_Create(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	_, err := svc.Create(context.Background(), "  ", "")
	assert.True(t, IsValidation(err))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `categories`").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `categories` WHERE `categories`.`id` = \\?").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(5, "Travel", "Trips", time.Now(), time.Now()))

	cat, err := svc.Create(context.Background(), "Travel", "Trips")
	require.NoError(t, err)
	assert.Equal(t, uint(5), cat.ID)
	assert.Equal(t, "Travel", cat.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryService_Update(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(5, "Travel", "", time.Now(), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `categories` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(5, "Trips", "Holidays", time.Now(), time.Now()))

	cat, err := svc.Update(context.Background(), 5, "Trips", "Holidays")
	require.NoError(t, err)
	assert.Equal(t, "Trips", cat.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories`").WillReturnRows(sqlmock.NewRows(categoryColumns))

	_, err := svc.Update(context.Background(), 5, "Trips", "")
	assert.True(t, IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryService_Delete_InUse(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(5, "Travel", "", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses` WHERE category_id = \\?").
		WithArgs(5).
		WillReturnRows(countRows(3))

	err := svc.Delete(context.Background(), 5)
	require.True(t, IsConflict(err))
	assert.Equal(t, "cannot delete: in use by 3 expenses", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryService_Delete(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories`").
		WillReturnRows(sqlmock.NewRows(categoryColumns).AddRow(5, "Travel", "", time.Now(), time.Now()))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `expenses`").WillReturnRows(countRows(0))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `categories` WHERE `categories`.`id` = \\?").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryService_List_Empty(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	svc := NewCategoryService(db)

	mock.ExpectQuery("SELECT \\* FROM `categories` ORDER BY name ASC").
		WillReturnRows(sqlmock.NewRows(categoryColumns))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	// 空表序列化为 [] 而不是 null
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
