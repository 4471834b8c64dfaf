// SPDX-License-Identifier: MPL-2.0

package sshserver

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/charmbracelet/ssh"
)

type contextKey string

// tokenContextKey holds the *Token that authenticated a connection.
const tokenContextKey contextKey = "token"

// GenerateToken creates a new session token. label names who or what the
// token was issued for and is logged with every session it authenticates.
func (s *Server) GenerateToken(label string) (*Token, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := s.clock.Now()
	token := &Token{
		Value:     TokenValue(hex.EncodeToString(tokenBytes)),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
		Label:     label,
	}

	s.tokenMu.Lock()
	s.tokens[token.Value] = token
	s.tokenMu.Unlock()

	s.logger.Debug("Generated token", "label", label, "expires", token.ExpiresAt.Format(time.RFC3339))

	return token, nil
}

// ValidateToken checks if a token is valid. Expired tokens are revoked.
func (s *Server) ValidateToken(tokenValue TokenValue) (*Token, bool) {
	s.tokenMu.RLock()
	token, exists := s.tokens[tokenValue]
	s.tokenMu.RUnlock()

	if !exists {
		return nil, false
	}

	if s.clock.Now().After(token.ExpiresAt) {
		s.RevokeToken(tokenValue)
		return nil, false
	}

	return token, true
}

// RevokeToken invalidates a token.
func (s *Server) RevokeToken(tokenValue TokenValue) {
	s.tokenMu.Lock()
	delete(s.tokens, tokenValue)
	s.tokenMu.Unlock()
}

// RevokeTokensForLabel revokes every token issued under label.
func (s *Server) RevokeTokensForLabel(label string) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	for tokenValue, token := range s.tokens {
		if token.Label == label {
			delete(s.tokens, tokenValue)
		}
	}
}

// GetConnectionInfo issues a token for label and returns everything a client
// needs to connect. Returns an error if the server is not running.
func (s *Server) GetConnectionInfo(label string) (*ConnectionInfo, error) {
	if !s.IsRunning() {
		return nil, fmt.Errorf("SSH server is not running (state: %s)", s.State())
	}

	token, err := s.GenerateToken(label)
	if err != nil {
		return nil, err
	}

	return &ConnectionInfo{
		Host:     s.cfg.Host,
		Port:     s.Port(),
		Token:    token.Value,
		User:     DefaultUser,
		ExpireAt: token.ExpiresAt,
	}, nil
}

// cleanupExpiredTokens periodically removes expired tokens.
func (s *Server) cleanupExpiredTokens() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.dropExpiredTokens()
		}
	}
}

func (s *Server) dropExpiredTokens() {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	now := s.clock.Now()
	for tokenValue, token := range s.tokens {
		if now.After(token.ExpiresAt) {
			delete(s.tokens, tokenValue)
		}
	}
}

// passwordHandler accepts a password that is a live token.
func (s *Server) passwordHandler(ctx ssh.Context, password string) bool {
	token, valid := s.ValidateToken(TokenValue(password))
	if !valid {
		s.logger.Warn("Invalid token authentication attempt", "user", ctx.User(), "remote", ctx.RemoteAddr())
		return false
	}

	ctx.SetValue(tokenContextKey, token)

	s.logger.Debug("Token authentication successful", "label", token.Label)
	return true
}

// publicKeyHandler rejects all public key authentication.
func (s *Server) publicKeyHandler(ctx ssh.Context, key ssh.PublicKey) bool {
	return false
}
