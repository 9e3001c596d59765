// Package cache agrega una capa Redis de lectura sobre la resolución de
// tenants por phone_number_id, el lookup más caliente del webhook.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/hatim85f/codex-crm/internal/domain/entity"
	"github.com/hatim85f/codex-crm/internal/domain/repository"
)

var _ repository.OrganizationRepository = (*OrgCache)(nil)

const (
	orgByPhoneNumberIDPrefix = "org:pnid:"
	orgCacheTTL              = 5 * time.Minute
)

// OrgCache decora OrganizationRepository cacheando GetByPhoneNumberID.
// Las escrituras invalidan; el resto de las lecturas pasa directo.
type OrgCache struct {
	inner repository.OrganizationRepository
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewOrgCache construye el decorador. rdb nil devuelve el repo sin cache.
func NewOrgCache(inner repository.OrganizationRepository, rdb *redis.Client, log zerolog.Logger) repository.OrganizationRepository {
	if rdb == nil {
		return inner
	}
	return &OrgCache{inner: inner, rdb: rdb, log: log}
}

// GetByPhoneNumberID primero intenta Redis; un fallo de Redis degrada a la DB.
func (c *OrgCache) GetByPhoneNumberID(ctx context.Context, phoneNumberID string) (*entity.Organization, error) {
	key := orgByPhoneNumberIDPrefix + phoneNumberID
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var org entity.Organization
		if err := json.Unmarshal(raw, &org); err == nil {
			return &org, nil
		}
		// entrada corrupta: se borra y se relee de la DB
		c.rdb.Del(ctx, key)
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("cache de organizaciones no disponible, leyendo de DB")
	}

	org, err := c.inner.GetByPhoneNumberID(ctx, phoneNumberID)
	if err != nil || org == nil {
		return org, err
	}
	if data, err := json.Marshal(org); err == nil {
		if err := c.rdb.Set(ctx, key, data, orgCacheTTL).Err(); err != nil {
			c.log.Warn().Err(err).Msg("no se pudo cachear la organización")
		}
	}
	return org, nil
}

// UpdateWhatsApp invalida la entrada cacheada del tenant antes de delegar.
func (c *OrgCache) UpdateWhatsApp(ctx context.Context, orgID string, wa entity.WhatsAppIntegration) error {
	c.invalidate(ctx, orgID)
	if wa.PhoneNumberID != "" {
		c.rdb.Del(ctx, orgByPhoneNumberIDPrefix+wa.PhoneNumberID)
	}
	return c.inner.UpdateWhatsApp(ctx, orgID, wa)
}

// Update invalida la entrada cacheada del tenant antes de delegar.
func (c *OrgCache) Update(ctx context.Context, org *entity.Organization) error {
	if org.WhatsApp.PhoneNumberID != "" {
		c.rdb.Del(ctx, orgByPhoneNumberIDPrefix+org.WhatsApp.PhoneNumberID)
	}
	return c.inner.Update(ctx, org)
}

func (c *OrgCache) invalidate(ctx context.Context, orgID string) {
	org, err := c.inner.GetByID(ctx, orgID)
	if err == nil && org != nil && org.WhatsApp.PhoneNumberID != "" {
		c.rdb.Del(ctx, orgByPhoneNumberIDPrefix+org.WhatsApp.PhoneNumberID)
	}
}

// Los métodos restantes delegan sin cache.

func (c *OrgCache) Create(ctx context.Context, org *entity.Organization) error {
	return c.inner.Create(ctx, org)
}

func (c *OrgCache) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return c.inner.GetByID(ctx, id)
}

func (c *OrgCache) GetByOwner(ctx context.Context, ownerID string) (*entity.Organization, error) {
	return c.inner.GetByOwner(ctx, ownerID)
}

func (c *OrgCache) GetBySlugOrName(ctx context.Context, slug, name string) (*entity.Organization, error) {
	return c.inner.GetBySlugOrName(ctx, slug, name)
}

func (c *OrgCache) SetOwner(ctx context.Context, orgID, userID string) error {
	return c.inner.SetOwner(ctx, orgID, userID)
}
