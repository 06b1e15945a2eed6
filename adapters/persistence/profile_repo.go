package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/internal/domain/profile"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

// Profiles are stored one row per user. Skills, social links and the
// experience/education sub-document arrays live in JSONB columns, so a write
// replaces the whole document (last-write-wins between concurrent mutations).
type postgresProfileRepo struct {
	db           *pgxpool.Pool
	logger       logger.Logger
	queryTimeout time.Duration
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger, queryTimeout time.Duration) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger, queryTimeout: queryTimeout}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte
	var ownerName, ownerAvatar string

	err := row.Scan(
		&p.UserID,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.Status,
		&p.GithubUsername,
		&skillsBytes,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.UpdatedAt,
		&ownerName,
		&ownerAvatar,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, queryError("failed to scan profile row", err)
	}

	p.Owner = &profile.Owner{Name: ownerName, AvatarURL: ownerAvatar}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Social = profile.Social{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}

func profileColumns() []string {
	return []string{
		"p.user_id", "p.company", "p.website", "p.location", "p.bio", "p.status",
		"p.github_username", "p.skills", "p.social", "p.experience", "p.education",
		"p.updated_at", "u.name", "u.avatar_url",
	}
}

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	query, args, err := psqlProfile.
		Select(profileColumns()...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Where(sq.Eq{"p.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile query", err)
	}

	return r.scanProfile(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresProfileRepo) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	query, args, err := psqlProfile.
		Select(profileColumns()...).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		OrderBy("p.updated_at DESC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build profile list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, queryError("failed to execute profile list query", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		INSERT INTO profiles (user_id, company, website, location, bio, status, github_username, skills, social, experience, education, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			status = EXCLUDED.status,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID,
		p.Company,
		p.Website,
		p.Location,
		p.Bio,
		p.Status,
		p.GithubUsername,
		skillsBytes,
		socialBytes,
		experienceBytes,
		educationBytes,
		p.UpdatedAt,
	)
	if err != nil {
		return queryError("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := queryContext(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return queryError("failed to delete profile", err)
	}
	if tag.RowsAffected() == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
