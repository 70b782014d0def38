package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osei/edushield/internal/pkg/auth"
	"github.com/osei/edushield/internal/pkg/logger"
)

const (
	defaultAdminEmail = "admin@edushield.app"
	defaultSchoolName = "Demo Basic School"
)

// CreateDefaultData provisions the initial SUPER_ADMIN account and a demo
// school when the database is empty. Re-running against a populated database
// is a no-op.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	var exists bool
	err := dbPool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE role = 'SUPER_ADMIN')`).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug().Msg("Super admin already present, skipping seed")
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe!123"
		logger.Warn().Msg("SEED_ADMIN_PASSWORD not set, seeding super admin with the default password")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = dbPool.Exec(ctx, `
		INSERT INTO users (email, full_name, role, password, is_active, terms_accepted)
		VALUES ($1, 'System Administrator', 'SUPER_ADMIN', $2, TRUE, TRUE)
	`, defaultAdminEmail, hashed)
	if err != nil {
		return err
	}
	logger.Info().Str("email", defaultAdminEmail).Msg("Seeded super admin account")

	var schoolID int64
	err = dbPool.QueryRow(ctx,
		`SELECT id FROM schools WHERE name = $1`, defaultSchoolName).Scan(&schoolID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if _, err := dbPool.Exec(ctx, `
			INSERT INTO schools (name, location, verified)
			VALUES ($1, 'Accra', TRUE)
		`, defaultSchoolName); err != nil {
			return err
		}
		logger.Info().Str("name", defaultSchoolName).Msg("Seeded demo school")
	}

	return nil
}
