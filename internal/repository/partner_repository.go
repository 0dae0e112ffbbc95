package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/docuiulia/partner-scoring/internal/domain"
)

type partnerRepository struct {
	db *sqlx.DB
}

func NewPartnerRepository(db *sqlx.DB) PartnerRepository {
	return &partnerRepository{db: db}
}

func (r *partnerRepository) GetByID(ctx context.Context, userID string, partnerID uuid.UUID) (*domain.Partner, error) {
	query := `
		SELECT id, user_id, name, cui, status, created_at, updated_at
		FROM partners
		WHERE user_id = $1 AND id = $2
	`

	var partner domain.Partner
	err := r.db.GetContext(ctx, &partner, query, userID, partnerID)
	if err != nil {
		return nil, err
	}

	return &partner, nil
}

func (r *partnerRepository) GetActivePartners(ctx context.Context, userID string) ([]*domain.Partner, error) {
	query := `
		SELECT id, user_id, name, cui, status, created_at, updated_at
		FROM partners
		WHERE user_id = $1 AND status = $2
		ORDER BY name
	`

	var partners []*domain.Partner
	err := r.db.SelectContext(ctx, &partners, query, userID, domain.PartnerStatusActive)
	if err != nil {
		return nil, err
	}

	return partners, nil
}

func (r *partnerRepository) ListActivePartners(ctx context.Context) ([]*domain.Partner, error) {
	query := `
		SELECT id, user_id, name, cui, status, created_at, updated_at
		FROM partners
		WHERE status = $1
		ORDER BY user_id, name
	`

	var partners []*domain.Partner
	err := r.db.SelectContext(ctx, &partners, query, domain.PartnerStatusActive)
	if err != nil {
		return nil, err
	}

	return partners, nil
}
