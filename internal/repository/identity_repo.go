package repository

import (
	"context"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

type IdentityRepository struct {
	db DBTX
}

func NewIdentityRepository(db DBTX) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	query := `
		INSERT INTO identities (uid, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		identity.UID,
		identity.Email,
		identity.DisplayName,
		identity.PasswordHash,
	).Scan(&identity.CreatedAt, &identity.UpdatedAt)
}

func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*models.Identity, error) {
	query := `
		SELECT uid, email, display_name, password_hash, created_at, updated_at
		FROM identities
		WHERE email = $1
	`
	var identity models.Identity
	err := r.db.QueryRow(ctx, query, email).
		Scan(&identity.UID, &identity.Email, &identity.DisplayName, &identity.PasswordHash, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *IdentityRepository) GetByUID(ctx context.Context, uid string) (*models.Identity, error) {
	query := `
		SELECT uid, email, display_name, password_hash, created_at, updated_at
		FROM identities
		WHERE uid = $1
	`
	var identity models.Identity
	err := r.db.QueryRow(ctx, query, uid).
		Scan(&identity.UID, &identity.Email, &identity.DisplayName, &identity.PasswordHash, &identity.CreatedAt, &identity.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
