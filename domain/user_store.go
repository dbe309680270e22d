package domain

import "context"

type UserStore interface {
	// InsertIfAbsent writes the user only when no record exists for the
	// email ($setOnInsert semantics); an existing record is left untouched.
	InsertIfAbsent(ctx context.Context, user *User) error
	SetStatus(ctx context.Context, email string, status UserStatus) error
	UpdateRole(ctx context.Context, email string, role UserRole, status UserStatus) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Count(ctx context.Context) (int64, error)
}
