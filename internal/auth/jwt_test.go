// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/gigbook/internal/config"
	"github.com/carterperez-dev/gigbook/internal/core"
)

func testJWTConfig(t *testing.T) config.JWTConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "private.pem"),
		PublicKeyPath:     filepath.Join(dir, "public.pem"),
		AccessTokenExpire: time.Hour,
		Issuer:            "gigbook",
		Audience:          "gigbook-api",
	}
	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))
	return cfg
}

func newTestManager(t *testing.T, cfg config.JWTConfig, revocations RevocationChecker) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(cfg, revocations)
	require.NoError(t, err)
	return m
}

func newTestBlacklist(t *testing.T) (*Blacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewBlacklist(rdb), mr
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t, testJWTConfig(t), nil)

	issued, err := m.CreateAccessToken(AccessTokenClaims{
		UserID: "user-1",
		Email:  "org@example.com",
		Role:   "organizer",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := m.VerifyAccessToken(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "org@example.com", claims.Email)
	assert.Equal(t, "organizer", claims.Role)
	assert.Equal(t, issued.TokenID, claims.TokenID)
	assert.WithinDuration(t, issued.ExpiresAt, claims.ExpiresAt, time.Second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig(t)
	cfg.AccessTokenExpire = -time.Minute
	m := newTestManager(t, cfg, nil)

	issued, err := m.CreateAccessToken(AccessTokenClaims{UserID: "u", Role: "artist"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyRejectsForeignAudienceAndTampering(t *testing.T) {
	cfg := testJWTConfig(t)
	issuer := newTestManager(t, cfg, nil)

	issued, err := issuer.CreateAccessToken(AccessTokenClaims{UserID: "u", Role: "artist"})
	require.NoError(t, err)

	other := cfg
	other.Audience = "someone-else"
	_, err = newTestManager(t, other, nil).VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	tampered := issued.Token[:len(issued.Token)-4] + "AAAA"
	_, err = issuer.VerifyAccessToken(context.Background(), tampered)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)

	_, err = issuer.VerifyAccessToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyRejectsRevokedToken(t *testing.T) {
	blacklist, mr := newTestBlacklist(t)
	m := newTestManager(t, testJWTConfig(t), blacklist)

	issued, err := m.CreateAccessToken(AccessTokenClaims{UserID: "u", Role: "artist"})
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(context.Background(), issued.Token)
	require.NoError(t, err)

	require.NoError(t, blacklist.Revoke(context.Background(), issued.TokenID, issued.ExpiresAt))
	assert.True(t, mr.Exists(blacklistPrefix+issued.TokenID))
	assert.Greater(t, mr.TTL(blacklistPrefix+issued.TokenID), 59*time.Minute)

	_, err = m.VerifyAccessToken(context.Background(), issued.Token)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestBlacklistSkipsExpiredTokens(t *testing.T) {
	blacklist, mr := newTestBlacklist(t)

	require.NoError(t, blacklist.Revoke(context.Background(), "old", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists(blacklistPrefix+"old"))

	revoked, err := blacklist.IsRevoked(context.Background(), "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestJWKSHandlerPublishesKey(t *testing.T) {
	m := newTestManager(t, testJWTConfig(t), nil)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Keys, 1)
	assert.Equal(t, "EC", body.Keys[0]["kty"])
	assert.Equal(t, m.GetKeyID(), body.Keys[0]["kid"])
	assert.NotContains(t, body.Keys[0], "d", "private component must not be published")
}
