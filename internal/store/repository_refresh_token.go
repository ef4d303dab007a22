package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/mentor-hub/internal/logger"
	"github.com/MKhiriev/mentor-hub/models"
	"github.com/georgysavva/scany/v2/sqlscan"
)

type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// CreateRefreshToken stores the token row and returns it with its id set.
// Only token.TokenHash is persisted; the plain value never reaches the database.
func (r *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createRefreshToken,
		token.UserID, token.TokenHash, token.ExpiresAt, token.CreatedAt, token.CreatedByIP,
	).Scan(&token.ID)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.CreateRefreshToken").
			Int64("user_id", token.UserID).
			Msg("failed to insert refresh token")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	token.IsRevoked = false
	return token, nil
}

func (r *refreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	var token models.RefreshToken
	if err := sqlscan.Get(ctx, r.db, &token, findRefreshTokenByHash, tokenHash); err != nil {
		if sqlscan.NotFound(err) {
			return models.RefreshToken{}, ErrRefreshTokenNotFound
		}

		log.Err(err).Str("func", "*refreshTokenRepository.FindRefreshTokenByHash").Msg("failed to find refresh token")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return token, nil
}

// RotateRefreshToken revokes the token with oldID and inserts replacement in
// one transaction. The revocation only succeeds while the old token is still
// active; when a concurrent rotation got there first, nothing is inserted
// and [ErrRefreshTokenAlreadyRevoked] is returned.
func (r *refreshTokenRepository) RotateRefreshToken(ctx context.Context, oldID int64, replacement models.RefreshToken) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "*refreshTokenRepository.RotateRefreshToken", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, revokeActiveRefreshToken, oldID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrRefreshTokenAlreadyRevoked
		}

		err = tx.QueryRowContext(ctx, createRefreshToken,
			replacement.UserID, replacement.TokenHash, replacement.ExpiresAt, replacement.CreatedAt, replacement.CreatedByIP,
		).Scan(&replacement.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.RotateRefreshToken").
			Int64("token_id", oldID).
			Msg("refresh token rotation failed")
		return models.RefreshToken{}, err
	}

	replacement.IsRevoked = false
	return replacement, nil
}

// RevokeRefreshToken marks a single token revoked. Revoking an already
// revoked token is not an error.
func (r *refreshTokenRepository) RevokeRefreshToken(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, revokeRefreshToken, id)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.RevokeRefreshToken").Int64("token_id", id).Msg("failed to revoke token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRefreshTokenNotFound
	}

	return nil
}

// RevokeAllUserTokens revokes every active token of the user and returns
// how many were revoked.
func (r *refreshTokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, revokeAllUserTokens, userID)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.RevokeAllUserTokens").Int64("user_id", userID).Msg("failed to revoke tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

// DeleteStaleTokens removes tokens that expired before the cutoff and
// revoked tokens issued before it.
func (r *refreshTokenRepository) DeleteStaleTokens(ctx context.Context, before time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteStaleTokens, before)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteStaleTokens").Time("before", before).Msg("failed to delete stale tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}
