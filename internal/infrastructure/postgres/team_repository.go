package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ repository.TeamRepository = (*TeamRepo)(nil)

// TeamRepo implementación de TeamRepository. Los miembros viven como
// TEXT[] en la fila del equipo (listas chicas, lectura siempre completa).
type TeamRepo struct {
	q Querier
}

// NewTeamRepository construye el adaptador.
func NewTeamRepository(q Querier) *TeamRepo {
	return &TeamRepo{q: q}
}

// Create persiste un nuevo equipo.
func (r *TeamRepo) Create(ctx context.Context, team *entity.Team) error {
	query := `
		INSERT INTO teams (id, organization_id, name, manager_id, member_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		team.ID, team.OrganizationID, team.Name, team.ManagerID, team.MemberIDs, team.CreatedAt, team.UpdatedAt,
	)
	if err != nil {
		return wrapStoreErr("insert team", err)
	}
	return nil
}

// GetByID obtiene un equipo por ID.
func (r *TeamRepo) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	var t entity.Team
	err := r.q.QueryRow(ctx,
		`SELECT id, organization_id, name, manager_id, member_ids, created_at, updated_at
		 FROM teams WHERE id = $1`, id,
	).Scan(&t.ID, &t.OrganizationID, &t.Name, &t.ManagerID, &t.MemberIDs, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapStoreErr("get team", err)
	}
	return &t, nil
}

// AddMember agrega un usuario al equipo si todavía no está.
func (r *TeamRepo) AddMember(ctx context.Context, teamID, userID string) error {
	query := `
		UPDATE teams
		SET member_ids = array_append(member_ids, $2), updated_at = NOW()
		WHERE id = $1 AND NOT ($2 = ANY(member_ids))`
	_, err := r.q.Exec(ctx, query, teamID, userID)
	if err != nil {
		return wrapStoreErr("add team member", err)
	}
	return nil
}

// ListByOrganization lista los equipos del tenant.
func (r *TeamRepo) ListByOrganization(ctx context.Context, organizationID string) ([]*entity.Team, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, organization_id, name, manager_id, member_ids, created_at, updated_at
		 FROM teams WHERE organization_id = $1 ORDER BY created_at`, organizationID,
	)
	if err != nil {
		return nil, wrapStoreErr("list teams", err)
	}
	defer rows.Close()
	var list []*entity.Team
	for rows.Next() {
		var t entity.Team
		if err := rows.Scan(&t.ID, &t.OrganizationID, &t.Name, &t.ManagerID, &t.MemberIDs, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, wrapStoreErr("scan team", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
