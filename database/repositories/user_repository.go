package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/platefork/recipe-core/model"
)

// UserRepository is the minimal user persistence the core needs: account
// creation with a unique email, and profile lookups for embedding author
// fields. Credential hashing and token issuance live with the external
// auth collaborator.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	res, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT DO NOTHING").
		Exec(ctx)
	if err != nil {
		return &model.StoreError{Op: "user create", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrDuplicateEmail
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	user := new(model.User)
	err := r.db.NewSelect().Model(user).Where("u.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, &model.StoreError{Op: "user get", Err: err}
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user := new(model.User)
	err := r.db.NewSelect().Model(user).Where("u.email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, &model.StoreError{Op: "user get", Err: err}
	}
	return user, nil
}
