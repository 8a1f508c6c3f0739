package rest

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opencivic/civic-api/internal/model"
	"github.com/pkg/errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique
// constraint violation. Registration races past the EmailExists
// check land here rather than surfacing as a plain failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (api *API) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	stmt := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	err := api.DB.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		log.Println("error checking email", err)
		return false, err
	}
	return exists, nil
}

func (api *API) CreateNewUserRepo(ctx context.Context, req model.User) error {
	stmt := `
        INSERT INTO users (
            id,
            name,
            email,
            role,
            password_hash,
            auth_provider
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := api.DB.Exec(ctx, stmt, req.ID, req.Name, req.Email, req.Role, req.PasswordHash, req.AuthProvider)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		log.Println("error creating new user", err)
		return err
	}
	return nil
}

func (api *API) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	stmt := `
        SELECT id, name, email, role, password_hash, auth_provider, created_at, updated_at
        FROM users
        WHERE email = $1
    `

	err := api.DB.QueryRow(ctx, stmt, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Println("error getting user by email", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) GetUserByID(ctx context.Context, id string) (model.User, error) {
	var user model.User
	stmt := `
        SELECT id, name, email, role, auth_provider, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	err := api.DB.QueryRow(ctx, stmt, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.AuthProvider,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Println("error getting user by id", err)
		return model.User{}, err
	}
	return user, nil
}

func (api *API) ListUsersRepo(ctx context.Context) ([]model.User, error) {
	stmt := `
        SELECT id, name, email, role, auth_provider, created_at, updated_at
        FROM users
        ORDER BY created_at DESC
    `

	rows, err := api.DB.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Role,
			&user.AuthProvider,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
