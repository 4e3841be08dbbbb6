package repository

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"payout_dashboard/internal/config/connections/postgres"
)

// PersonalAccessToken is one row of personal_access_tokens. Tokens are
// stored hashed; the plain token only exists in the caller's hands.
type PersonalAccessToken struct {
	ID        int64
	TokenHash string
	Username  string
	ExpiresAt *time.Time
}

type PersonalAccessTokenRepository struct {
	pg *postgres.Postgres
}

func NewPersonalAccessTokenRepository(pg *postgres.Postgres) *PersonalAccessTokenRepository {
	return &PersonalAccessTokenRepository{pg: pg}
}

// FindTokenByPlainToken resolves a presented token, accepting both the
// bare token and the "id|token" form some clients send.
func (r *PersonalAccessTokenRepository) FindTokenByPlainToken(ctx context.Context, plainToken string) (*PersonalAccessToken, error) {
	plainToken = strings.TrimSpace(plainToken)
	if plainToken == "" {
		return nil, errors.New("empty token")
	}

	tokenPart := plainToken
	var tokenID *int64
	if idx := strings.Index(plainToken, "|"); idx > 0 {
		if id, err := strconv.ParseInt(plainToken[:idx], 10, 64); err == nil {
			tokenID = &id
			tokenPart = plainToken[idx+1:]
		}
	}

	sum := sha256.Sum256([]byte(tokenPart))
	hashStr := fmt.Sprintf("%x", sum)

	var pat PersonalAccessToken

	if tokenID != nil {
		err := r.pg.Pool.QueryRow(ctx, `
			SELECT id, token, username, expires_at
			FROM personal_access_tokens
			WHERE id = $1 AND token = $2
			  AND (expires_at IS NULL OR expires_at > $3)`,
			*tokenID, hashStr, time.Now(),
		).Scan(&pat.ID, &pat.TokenHash, &pat.Username, &pat.ExpiresAt)
		if err == nil {
			return &pat, nil
		}
	}

	err := r.pg.Pool.QueryRow(ctx, `
		SELECT id, token, username, expires_at
		FROM personal_access_tokens
		WHERE token = $1
		  AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY id DESC
		LIMIT 1`,
		hashStr, time.Now(),
	).Scan(&pat.ID, &pat.TokenHash, &pat.Username, &pat.ExpiresAt)
	if err != nil {
		return nil, errors.New("token not found")
	}

	return &pat, nil
}
