package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"stayvista_service/domain"
	"stayvista_service/errors"
)

type UserService struct {
	store  domain.UserStore
	tracer trace.Tracer
}

func NewUserService(store domain.UserStore, tracer trace.Tracer) *UserService {
	return &UserService{
		store:  store,
		tracer: tracer,
	}
}

// Upsert saves a user on first write. A user asking to become a host only
// has the status transitioned, everything else is insert-if-absent so an
// existing record (and its timestamp) is never overwritten.
func (service *UserService) Upsert(ctx context.Context, user *domain.User) error {
	ctx, span := service.tracer.Start(ctx, "UserService.Upsert")
	defer span.End()

	if strings.EqualFold(string(user.Status), string(domain.StatusRequested)) {
		return service.store.SetStatus(ctx, user.Email, domain.StatusRequested)
	}

	if user.Role == "" {
		user.Role = domain.RoleGuest
	}
	user.Timestamp = time.Now().UnixMilli()

	return service.store.InsertIfAbsent(ctx, user)
}

func (service *UserService) Get(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Get")
	defer span.End()

	user, err := service.store.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, fmt.Errorf(errors.UserNotFoundError)
	}
	return user, nil
}

func (service *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetAll")
	defer span.End()

	return service.store.GetAll(ctx)
}

// ResolveRole looks up the persisted role for an email. A missing record
// is an error, callers must treat it as no permission.
func (service *UserService) ResolveRole(ctx context.Context, email string) (domain.UserRole, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.ResolveRole")
	defer span.End()

	user, err := service.store.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", fmt.Errorf(errors.UserNotFoundError)
	}
	return user.Role, nil
}

func (service *UserService) UpdateRole(ctx context.Context, email string, change *domain.RoleChange) error {
	ctx, span := service.tracer.Start(ctx, "UserService.UpdateRole")
	defer span.End()

	status := change.Status
	if status == "" {
		status = domain.StatusVerified
	}

	return service.store.UpdateRole(ctx, email, change.Role, status)
}
