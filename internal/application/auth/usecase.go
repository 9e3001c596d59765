package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatim85f/codex-crm/internal/application/dto"
	"github.com/hatim85f/codex-crm/internal/domain"
	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
	"github.com/hatim85f/codex-crm/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationTxRunner ejecuta el alta organización + admin dentro de una
// transacción: o se persisten ambos y el back-reference del owner, o nada.
type RegistrationTxRunner interface {
	Run(ctx context.Context, fn func(
		orgRepo repository.OrganizationRepository,
		userRepo repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro de organización y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	txRunner RegistrationTxRunner
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, txRunner RegistrationTxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, orgRepo: orgRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// RegisterOrganization crea la organización y su usuario admin dueño en una
// sola transacción, y devuelve ambos con un JWT de sesión.
func (uc *AuthUseCase) RegisterOrganization(ctx context.Context, in dto.RegisterOrganizationRequest) (*dto.RegisterOrganizationResponse, error) {
	if in.OrganizationName == "" || in.Slug == "" || in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		return nil, domain.ErrInvalidInput
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	orgConflict, err := uc.orgRepo.GetBySlugOrName(ctx, slug, strings.TrimSpace(in.OrganizationName))
	if err != nil {
		return nil, err
	}
	if orgConflict != nil {
		return nil, domain.ErrDuplicate
	}
	userConflict, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if userConflict != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	org := &entity.Organization{
		ID:       uuid.New().String(),
		Name:     strings.TrimSpace(in.OrganizationName),
		Slug:     slug,
		Address:  in.Address,
		Phone:    in.PhoneNumber,
		Website:  in.Website,
		Logo:     in.Logo,
		Industry: in.Industry,
		Plan:     entity.PlanStarter,
		Social: entity.SocialLinks{
			Facebook:  in.Facebook,
			Instagram: in.Instagram,
			WhatsApp:  in.WhatsApp,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &entity.User{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          email,
		ProfilePicture: in.ProfilePicture,
		PasswordHash:   string(hash),
		Role:           entity.RoleAdmin,
		IsAuthorized:   true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) error {
		if err := orgRepo.Create(ctx, org); err != nil {
			return err
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			return err
		}
		return orgRepo.SetOwner(ctx, org.ID, admin.ID)
	})
	if err != nil {
		return nil, err
	}
	org.OwnerID = admin.ID

	token, err := jwt.Generate(uc.jwtCfg.Secret, admin.ID, org.ID, admin.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterOrganizationResponse{
		Token:        token,
		Organization: *ToOrganizationResponse(org),
		User:         *ToUserResponse(admin),
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.OrganizationID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse mapea la entidad a su DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		Email:          u.Email,
		Phone:          u.Phone,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		IsAuthorized:   u.IsAuthorized,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ToOrganizationResponse mapea la entidad a su DTO de salida (sin tokens).
func ToOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:               o.ID,
		OrganizationName: o.Name,
		Slug:             o.Slug,
		Address:          o.Address,
		PhoneNumber:      o.Phone,
		Website:          o.Website,
		Logo:             o.Logo,
		Industry:         o.Industry,
		Plan:             o.Plan,
		Social: dto.SocialLinksDTO{
			Facebook:  o.Social.Facebook,
			Instagram: o.Social.Instagram,
			WhatsApp:  o.Social.WhatsApp,
		},
		WhatsApp: dto.WhatsAppIntegrationResponse{
			WabaID:             o.WhatsApp.WabaID,
			PhoneNumberID:      o.WhatsApp.PhoneNumberID,
			DisplayPhoneNumber: o.WhatsApp.DisplayPhoneNumber,
			Enabled:            o.WhatsApp.Enabled,
		},
		OwnerID:               o.OwnerID,
		AssignedDefaultUserID: o.AssignedDefaultUserID,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
}
