package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/errors"
)

var userColumns = []string{"cpf_cnpj", "name", "email", "password", "role", "profile_pic", "created_at", "updated_at"}

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestCredentialRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow("12345678901", "Maria Souza", "maria@exemplo.com", "$argon2id$hash", "provider", "", created, created))

		got, err := repo.FindByEmail(ctx, "maria@exemplo.com")

		require.NoError(t, err)
		assert.Equal(t, &entity.Credential{
			Subject:      "12345678901",
			Name:         "Maria Souza",
			Email:        "maria@exemplo.com",
			PasswordHash: "$argon2id$hash",
			Role:         entity.RoleProvider,
			CreatedAt:    created,
			UpdatedAt:    created,
		}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows(userColumns))

		got, err := repo.FindByEmail(ctx, "ninguem@exemplo.com")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(sql.ErrConnDone)

		_, err := repo.FindByEmail(ctx, "maria@exemplo.com")

		var dbErr *domainerrors.DatabaseExecuteError
		require.True(t, errors.As(err, &dbErr))
		assert.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestCredentialRepository_ExistsByEmail(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		count int64
		want  bool
	}{
		{name: "taken", count: 1, want: true},
		{name: "free", count: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockGorm(t)
			repo := NewCredentialRepository(db)

			mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
				WithArgs("maria@exemplo.com").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			got, err := repo.ExistsByEmail(ctx, "maria@exemplo.com")

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCredentialRepository_FindBySubject(t *testing.T) {
	db, mock := newMockGorm(t)
	repo := NewCredentialRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE cpf_cnpj = \$1`).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindBySubject(context.Background(), "12345678901")

	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
}

func TestCredentialRepository_Create(t *testing.T) {
	ctx := context.Background()
	newCredential := func() *entity.Credential {
		return &entity.Credential{
			Subject:      "12345678901",
			Name:         "Maria Souza",
			Email:        "maria@exemplo.com",
			PasswordHash: "$argon2id$hash",
			Role:         entity.RoleProvider,
		}
	}

	t.Run("success fills timestamps", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)
		credential := newCredential()

		mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, credential))
		assert.False(t, credential.CreatedAt.IsZero())
		assert.False(t, credential.UpdatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email constraint", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

		err := repo.Create(ctx, newCredential())

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("duplicate primary key", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_pkey"})

		err := repo.Create(ctx, newCredential())

		assert.ErrorIs(t, err, repository.ErrDuplicateSubject)
	})

	t.Run("unnamed duplicate resolved by email lookup", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.Create(ctx, newCredential())

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("check constraint", func(t *testing.T) {
		db, mock := newMockGorm(t)
		repo := NewCredentialRepository(db)

		mock.ExpectExec(`INSERT INTO "users"`).
			WillReturnError(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: "users_role_check"})

		err := repo.Create(ctx, newCredential())

		var dbErr *domainerrors.DatabaseExecuteError
		assert.True(t, errors.As(err, &dbErr))
		assert.NotErrorIs(t, err, repository.ErrDuplicateEmail)
	})
}
