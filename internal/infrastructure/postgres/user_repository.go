package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	id, organization_id, first_name, last_name, email, phone,
	profile_picture, password_hash, role, is_authorized, created_at, updated_at`

// UserRepo implementación de UserRepository.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado -> domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (
			id, organization_id, first_name, last_name, email, phone,
			profile_picture, password_hash, role, is_authorized, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.OrganizationID, user.FirstName, user.LastName, user.Email, user.Phone,
		user.ProfilePicture, user.PasswordHash, user.Role, user.IsAuthorized, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmail obtiene un usuario por email (login, chequeo de duplicados).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(ctx, query, email)
}

// ListByOrganization lista los usuarios del tenant.
func (r *UserRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, wrapStoreErr("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.OrganizationID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
			&u.ProfilePicture, &u.PasswordHash, &u.Role, &u.IsAuthorized, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, wrapStoreErr("scan user", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.OrganizationID, &u.FirstName, &u.LastName, &u.Email, &u.Phone,
		&u.ProfilePicture, &u.PasswordHash, &u.Role, &u.IsAuthorized, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get user", err)
	}
	return &u, nil
}
