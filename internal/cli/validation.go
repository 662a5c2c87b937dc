package cli

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Package-level validator used by the command entry points.
var validate *validator.Validate

// repoFullNameRegex matches the owner/name form the hosting platform reports
// in GITHUB_REPOSITORY.
var repoFullNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*/[A-Za-z0-9._-]+$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("repo_full_name", validateRepoFullName); err != nil {
		panic(fmt.Errorf("register validator repo_full_name: %w", err))
	}
}

// validateRepoFullName implements the "repo_full_name" tag.
func validateRepoFullName(fl validator.FieldLevel) bool {
	return repoFullNameRegex.MatchString(fl.Field().String())
}
