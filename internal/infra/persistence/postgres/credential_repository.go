// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"handly/internal/domain/entity"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/errors"
	"handly/internal/infra/persistence/model"
)

// credentialRepository implements repository.CredentialRepository using GORM.
type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository is the constructor for credentialRepository.
// It returns the repository as a repository.CredentialRepository interface, adhering to dependency inversion.
func NewCredentialRepository(db *gorm.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// FindByEmail is pinned to the primary: a login right after registration
// must see the new row even when replicas lag.
func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ?", email).
		First(&userM).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCredentialNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential by email")
	}

	return toCredentialDomain(&userM), nil
}

// ExistsByEmail is pinned to the primary for the same reason as FindByEmail.
func (repo *credentialRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email existence")
	}

	return count > 0, nil
}

func (repo *credentialRepository) FindBySubject(ctx context.Context, subject string) (*entity.Credential, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("cpf_cnpj = ?", subject).
		First(&userM).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrCredentialNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential by subject")
	}

	return toCredentialDomain(&userM), nil
}

// Create inserts the credential and copies the generated timestamps back.
func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	userM := fromCredentialDomain(credential)

	err := repo.db.WithContext(ctx).Create(userM).Error
	if err == nil {
		credential.CreatedAt = userM.CreatedAt
		credential.UpdatedAt = userM.UpdatedAt

		return nil
	}

	if constraint, ok := uniqueViolationConstraint(err); ok {
		return errors.Wrap(repo.duplicateKind(ctx, constraint, credential.Email), "failed to create credential")
	}
	if isCheckConstraintViolation(err) {
		return domainerrors.NewDatabaseExecuteError(err, "credential violates a check constraint")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create credential")
}

// duplicateKind tells which unique key rejected an insert. When the driver
// did not report a constraint name the email is looked up again.
func (repo *credentialRepository) duplicateKind(ctx context.Context, constraint, email string) error {
	switch constraint {
	case model.UsersEmailUniqueKey:
		return repository.ErrDuplicateEmail
	case model.UsersPrimaryKey:
		return repository.ErrDuplicateSubject
	}

	if taken, err := repo.ExistsByEmail(ctx, email); err == nil && taken {
		return repository.ErrDuplicateEmail
	}

	return repository.ErrDuplicateSubject
}

func toCredentialDomain(m *model.UserModel) *entity.Credential {
	return &entity.Credential{
		Subject:      m.CPFCNPJ,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.Password,
		Role:         entity.Role(m.Role),
		ProfilePic:   m.ProfilePic,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromCredentialDomain(c *entity.Credential) *model.UserModel {
	return &model.UserModel{
		CPFCNPJ:    c.Subject,
		Name:       c.Name,
		Email:      c.Email,
		Password:   c.PasswordHash,
		Role:       c.Role.String(),
		ProfilePic: c.ProfilePic,
	}
}
