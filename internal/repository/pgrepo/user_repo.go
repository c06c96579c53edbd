package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, created_at, updated_at, email, username, encrypted_password, location_id`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser сохраняет пользователя. Email и username приводятся к нижнему регистру,
// в args.Password ожидается уже захешированный пароль.
func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx,
		`INSERT INTO users (email, username, encrypted_password)
		VALUES (lower($1), lower($2), $3)
		RETURNING `+userColumns,
		args.Email, args.Username, args.Password,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "create user %s", args.Username)
	}
	return user, nil
}

func (u *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "find user by id %s", id)
	}
	return user, nil
}

// FindByEmail ищет пользователя без учета регистра.
func (u *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "find user by email")
	}
	return user, nil
}

// FindByUsername ищет пользователя без учета регистра.
func (u *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "find user by username %s", username)
	}
	return user, nil
}

func (u *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := u.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(username) = lower($1) OR lower(email) = lower($2))`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "check user exists %s", username)
	}
	return exists, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Email,
		&user.Username,
		&user.EncryptedPassword,
		&user.LocationID,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
