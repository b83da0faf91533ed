package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/target/marketplace-console/internal/core"
	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/marketplace"
)

// UserService backs the admin user and admin-account screens.
type UserService struct {
	backend core.UserBackend
	logger  *slog.Logger
}

// NewUserService constructs a UserService.
func NewUserService(backend core.UserBackend) *UserService {
	if backend == nil {
		panic("user backend is required")
	}
	return &UserService{backend: backend, logger: slog.Default().With("component", "user_service")}
}

// List returns marketplace users matching opts.
func (s *UserService) List(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.UserListOptions,
) (*model.Page[model.User], error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, apperrors.ValidationField("status", "Unknown user status.")
	}
	page, err := s.backend.ListUsers(withSession(ctx, sess), opts)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return page, nil
}

// SetStatus suspends or reactivates a user. Admins cannot suspend themselves.
func (s *UserService) SetStatus(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	status model.UserStatus,
) (*model.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "User is required.")
	}
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "Unknown user status.")
	}
	if sess != nil && sess.UserID == id && status == model.UserSuspended {
		return nil, apperrors.Forbidden("You cannot suspend your own account.")
	}
	u, err := s.backend.SetUserStatus(withSession(ctx, sess), id, status)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	s.logger.InfoContext(ctx, "user status changed", "user_id", id, "status", status)
	return u, nil
}

// ListAdmins returns admin accounts.
func (s *UserService) ListAdmins(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.ListOptions,
) (*model.Page[model.User], error) {
	page, err := s.backend.ListAdmins(withSession(ctx, sess), opts)
	if err != nil {
		return nil, marketplace.ToAppError(err)
	}
	return page, nil
}
