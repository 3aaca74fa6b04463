package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stepik_backend/internal/common"
	"stepik_backend/internal/domain/model"
)

type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
}

type pgProfileRepository struct {
	db *sql.DB
}

func NewPgProfileRepository(db *sql.DB) ProfileRepository {
	return &pgProfileRepository{db: db}
}

func (r *pgProfileRepository) Get(ctx context.Context, userID string) (*model.Profile, error) {
	query := `SELECT user_id, bio, avatar, country, phone_number, updated_at FROM profiles WHERE user_id = $1`
	p := &model.Profile{}
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.Bio, &avatar, &p.Country, &p.PhoneNumber, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProfileRepository.Get: %w", err)
	}
	if avatar.Valid {
		p.Avatar = &avatar.String
	}
	return p, nil
}

func (r *pgProfileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	query := `INSERT INTO profiles (user_id, bio, avatar, country, phone_number)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id) DO UPDATE SET
	              bio = EXCLUDED.bio, avatar = EXCLUDED.avatar, country = EXCLUDED.country,
	              phone_number = EXCLUDED.phone_number, updated_at = CURRENT_TIMESTAMP
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Bio, p.Avatar, p.Country, p.PhoneNumber).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgProfileRepository.Upsert: %w", err)
	}
	return nil
}
