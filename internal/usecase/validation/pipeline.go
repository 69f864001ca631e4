// Package validation classifies registration and login payloads into
// field-level rule violations before anything is hashed, stored or signed.
//
// Checks run in a fixed order. Presence failures, including a provider
// without an identifier, stop the pipeline; format and conflict failures are
// collected together.
package validation

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/fx"

	"handly/config"
	domainerrors "handly/internal/domain/errors"
	"handly/internal/domain/repository"
	"handly/internal/errors"
	"handly/internal/usecase"
)

var fieldCodes = map[string]string{
	"name":     domainerrors.CodeName,
	"email":    domainerrors.CodeEmail,
	"password": domainerrors.CodePassword,
	"cpf_cnpj": domainerrors.CodeIdentifier,
	"role":     domainerrors.CodeRole,
}

// Pipeline is safe for concurrent use.
type Pipeline struct {
	presence *validator.Validate
	format   *validator.Validate
	repo     repository.CredentialRepository
}

// Params holds dependencies for the pipeline, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Repo   repository.CredentialRepository
}

// NewPipeline reads validation.requireIdentifier from the config.
func NewPipeline(params Params) usecase.CredentialValidator {
	requireIdentifier := params.Config != nil && params.Config.Validation != nil && params.Config.Validation.RequireIdentifier

	return New(params.Repo, requireIdentifier)
}

// New builds a pipeline. When requireIdentifier is set, cpf_cnpj is a
// mandatory field for every role.
func New(repo repository.CredentialRepository, requireIdentifier bool) *Pipeline {
	return &Pipeline{
		presence: newPresenceValidator(requireIdentifier),
		format:   newFormatValidator(),
		repo:     repo,
	}
}

// ValidateRegistration returns the violations of in, grouped missing, then
// format, then conflict. A nil slice means the payload may be stored. The
// error is reserved for storage failures during the uniqueness check.
func (p *Pipeline) ValidateRegistration(ctx context.Context, in *usecase.RegisterInput) (domainerrors.ValidationErrors, error) {
	if in == nil {
		in = &usecase.RegisterInput{}
	}

	if missing := p.check(ctx, p.presence, in, domainerrors.CategoryMissing, domainerrors.MessageMissing); len(missing) > 0 {
		return missing, nil
	}

	violations := p.check(ctx, p.format, in, domainerrors.CategoryFormat, domainerrors.MessageMalformed)

	if !violations.HasField("email") {
		taken, err := p.repo.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, errors.Wrap(err, "check email uniqueness")
		}
		if taken {
			violations = append(violations, domainerrors.ValidationError{
				Field:    "email",
				Code:     domainerrors.CodeEmail,
				Message:  domainerrors.MessageEmailTaken,
				Category: domainerrors.CategoryConflict,
			})
		}
	}

	if len(violations) == 0 {
		return nil, nil
	}

	return violations.Sorted(), nil
}

// ValidateLogin runs the structural checks of a login attempt. Format
// failures carry the generic invalid-credentials message.
func (p *Pipeline) ValidateLogin(ctx context.Context, in *usecase.LoginInput) domainerrors.ValidationErrors {
	if in == nil {
		in = &usecase.LoginInput{}
	}

	if missing := p.check(ctx, p.presence, in, domainerrors.CategoryMissing, domainerrors.MessageMissing); len(missing) > 0 {
		return missing
	}

	return p.check(ctx, p.format, in, domainerrors.CategoryFormat, domainerrors.MessageInvalidCredentials)
}

func (p *Pipeline) check(ctx context.Context, v *validator.Validate, in any, category domainerrors.Category, message string) domainerrors.ValidationErrors {
	err := v.StructCtx(ctx, in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// validator only returns other errors for non-struct input
		panic(err)
	}

	out := make(domainerrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domainerrors.ValidationError{
			Field:    fe.Field(),
			Code:     fieldCodes[fe.Field()],
			Message:  message,
			Category: category,
		})
	}

	return out
}
