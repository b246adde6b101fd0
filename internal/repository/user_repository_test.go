package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"usuarios/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestUserRepository_FindByMail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `usuarios` WHERE mail = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mail", "contraseña"}).
			AddRow(1, "a@x.com", "$2a$10$hash"))

	user, err := repo.FindByMail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 1, Mail: "a@x.com", PasswordHash: "$2a$10$hash"}, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByMail_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `usuarios` WHERE mail = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mail", "contraseña"}))

	user, err := repo.FindByMail(context.Background(), "nobody@x.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByMail_StoreError(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)
	boom := errors.New("connection refused")

	mock.ExpectQuery("SELECT \\* FROM `usuarios`").WillReturnError(boom)

	user, err := repo.FindByMail(context.Background(), "a@x.com")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, boom)
}

func TestUserRepository_FindByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `usuarios` WHERE `usuarios`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "mail", "contraseña"}).
			AddRow(7, "b@x.com", "$2a$10$hash"))

	user, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "b@x.com", user.Mail)
}

func TestUserRepository_Create(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `usuarios`").
		WithArgs("a@x.com", "$2a$10$hash").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	user := &model.User{Mail: "a@x.com", PasswordHash: "$2a$10$hash"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, uint(42), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateMail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `usuarios`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'idx_usuarios_mail'"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.User{Mail: "a@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}
