package services

import (
	"errors"
	"fmt"

	"github.com/artwork-tools/artwork-admin/internal/authz"
	"github.com/artwork-tools/artwork-admin/internal/models"
	"github.com/artwork-tools/artwork-admin/internal/repository"
	"gorm.io/gorm"
)

// assignableUsers loads the target users and checks that actor may update
// every one of them. A single refusal fails the whole assignment before
// anything is written.
func assignableUsers(authorizer authz.Authorizer, users repository.UserRepository, actor *authz.Actor, field string, ids []uint64) ([]models.User, error) {
	targets, err := users.FindByIDs(ids)
	if err != nil {
		if errors.Is(err, repository.ErrUsersNotFound) {
			return nil, fieldError(field, "One or more selected users do not exist.")
		}
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for i := range targets {
		if !authorizer.Can(actor, authz.ActionUpdate, &targets[i]) {
			return nil, ErrForbidden
		}
	}
	return targets, nil
}

// assignableDepartments is assignableUsers for departments.
func assignableDepartments(authorizer authz.Authorizer, departments repository.DepartmentRepository, actor *authz.Actor, field string, ids []uint64) ([]models.Department, error) {
	targets, err := departments.FindByIDs(ids)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentsNotFound) {
			return nil, fieldError(field, "One or more selected departments do not exist.")
		}
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}

	for i := range targets {
		if !authorizer.Can(actor, authz.ActionUpdate, &targets[i]) {
			return nil, ErrForbidden
		}
	}
	return targets, nil
}

// notFound maps gorm's missing-record error onto ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}
