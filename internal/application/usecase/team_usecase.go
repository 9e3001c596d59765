package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatim85f/codex-crm/internal/application/auth"
	"github.com/hatim85f/codex-crm/internal/application/dto"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

// InviteMailer envía el email de invitación a un miembro nuevo de equipo.
// Lo implementa el cliente Brevo; nil deshabilita el envío.
type InviteMailer interface {
	SendTemplate(ctx context.Context, to, name string, templateID int, params map[string]string) error
}

// TeamUseCase aplica reglas de negocio para equipos.
type TeamUseCase struct {
	teams            repository.TeamRepository
	users            repository.UserRepository
	mailer           InviteMailer
	inviteTemplateID int
	log              zerolog.Logger
}

// NewTeamUseCase construye el caso de uso. mailer puede ser nil (sin emails).
func NewTeamUseCase(teams repository.TeamRepository, users repository.UserRepository, mailer InviteMailer, inviteTemplateID int, log zerolog.Logger) *TeamUseCase {
	return &TeamUseCase{teams: teams, users: users, mailer: mailer, inviteTemplateID: inviteTemplateID, log: log}
}

// Create alta de un equipo; el caller queda como manager.
func (uc *TeamUseCase) Create(ctx context.Context, organizationID, managerID string, in dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	team := &entity.Team{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		ManagerID:      managerID,
		MemberIDs:      []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return toTeamResponse(team), nil
}

// AddMember crea el usuario, lo agrega al equipo y dispara el email de
// invitación con la credencial inicial. El envío es best-effort: un fallo del
// proveedor de email no revierte el alta, solo se loguea.
func (uc *TeamUseCase) AddMember(ctx context.Context, organizationID, teamID, managerID string, in dto.AddTeamMemberRequest) (*dto.UserResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	team, err := uc.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil || team.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	password := in.Password
	if password == "" {
		password = randomPassword(8)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	now := time.Now()
	user := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          email,
		Phone:          in.UserPhone,
		PasswordHash:   string(hash),
		Role:           role,
		IsAuthorized:   true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.teams.AddMember(ctx, teamID, user.ID); err != nil {
		return nil, err
	}

	if uc.mailer != nil {
		manager, _ := uc.users.GetByID(ctx, managerID)
		managerName := ""
		if manager != nil {
			managerName = manager.FullName()
		}
		go func(to, name, managerName, password string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			err := uc.mailer.SendTemplate(sendCtx, to, name, uc.inviteTemplateID, map[string]string{
				"userName": name,
				"manager":  managerName,
				"password": password,
				"time":     time.Now().Format("02 Jan 2006, 03:04 PM"),
			})
			if err != nil {
				uc.log.Error().Err(err).Str("to", to).Msg("email de invitación no enviado")
			}
		}(email, user.FullName(), managerName, password)
	}

	return auth.ToUserResponse(user), nil
}

// ListByOrganization lista los equipos del tenant.
func (uc *TeamUseCase) ListByOrganization(ctx context.Context, organizationID string) ([]*dto.TeamResponse, error) {
	list, err := uc.teams.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TeamResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTeamResponse(t))
	}
	return out, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomPassword genera una credencial inicial aleatoria base36.
func randomPassword(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			// rand.Reader no debería fallar; si pasa, caer a un índice fijo
			n = big.NewInt(int64(i % len(passwordAlphabet)))
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String()
}

func toTeamResponse(t *entity.Team) *dto.TeamResponse {
	return &dto.TeamResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Name:           t.Name,
		ManagerID:      t.ManagerID,
		MemberIDs:      t.MemberIDs,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
