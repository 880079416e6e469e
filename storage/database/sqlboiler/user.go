package boiledrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/sqlboiler/v4/queries"

	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/user"
)

const userColumns = "id, name, email, role, password_hash, created_at, updated_at"

type userRow struct {
	ID           string    `boil:"id"`
	Name         string    `boil:"name"`
	Email        string    `boil:"email"`
	Role         string    `boil:"role"`
	PasswordHash []byte    `boil:"password_hash"`
	CreatedAt    time.Time `boil:"created_at"`
	UpdatedAt    time.Time `boil:"updated_at"`
}

type userRepository struct {
	baseRepository
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) user.Repository {
	return &userRepository{baseRepository{exec: exec}}
}

func (repo userRepository) unboil(row userRow) user.User {
	return user.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		Role:         user.Role(row.Role),
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}
}

func (repo userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	ids := make([]string, 0, len(excludedUsers))
	for _, u := range excludedUsers {
		ids = append(ids, u.ID)
	}

	var res struct {
		Exists bool `boil:"exists"`
	}
	err := queries.Raw(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND NOT (id::text = ANY($2::text[]))) AS "exists"`,
		email, pq.StringArray(ids),
	).Bind(ctx, repo.getExec(exec), &res)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if res.Exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := queries.Raw(
		`INSERT INTO users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		usr.ID, usr.Name, usr.Email, string(usr.Role), usr.PasswordHash, usr.CreatedAt.UTC(), usr.UpdatedAt.UTC(),
	).ExecContext(ctx, repo.getExec(exec))
	if err != nil {
		if isUniqueViolation(err, "") {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter user.QueryFilter, exec ...core.DBExecutor) ([]user.User, error) {
	var rows []userRow
	err := queries.Raw(
		`SELECT `+userColumns+` FROM users WHERE ($1::text = '' OR role = $1::text) ORDER BY name ASC`,
		string(filter.Role),
	).Bind(ctx, repo.getExec(exec), &rows)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, repo.unboil(row))
	}
	return users, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	var row userRow
	var err error
	exe := repo.getExec(exec)

	switch {
	case filter.ID != "":
		if _, err = uuid.Parse(filter.ID); err != nil {
			return user.User{}, user.ErrNotFound
		}
		err = queries.Raw(`SELECT `+userColumns+` FROM users WHERE id = $1`, filter.ID).Bind(ctx, exe, &row)
	case filter.Email != "":
		err = queries.Raw(`SELECT `+userColumns+` FROM users WHERE email = $1`, filter.Email).Bind(ctx, exe, &row)
	default:
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user")
	}
	return repo.unboil(row), nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	res, err := queries.Raw(
		`UPDATE users SET name = $2, email = $3, role = $4, password_hash = $5, updated_at = $6 WHERE id = $1`,
		usr.ID, usr.Name, usr.Email, string(usr.Role), usr.PasswordHash, usr.UpdatedAt.UTC(),
	).ExecContext(ctx, repo.getExec(exec))
	if err != nil {
		if isUniqueViolation(err, "") {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
