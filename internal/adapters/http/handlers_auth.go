package web

import (
	"net/http"

	"diaconisas/internal/adapters/http/middleware"
	"diaconisas/internal/adapters/wire"
	"diaconisas/internal/application/orchestrators"
)

// handleLogin handles POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in wire.Credentials
	if err := decodeValid(r, &in); err != nil {
		fail(w, err)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: in.Username,
		Password: in.Password,
	}, orchestrators.LoginDeps{
		AccountStore: s.stores.AccountStore,
		Tokens:       s.opts.Tokens,
		Now:          s.opts.Now,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.Token{AccessToken: result.AccessToken, TokenType: middleware.TokenType})
}

// handleRegister handles POST /api/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.opts.AllowRegistration {
		fail(w, orchestrators.ErrRegistrationClosed)
		return
	}
	var in wire.Credentials
	if err := decodeValid(r, &in); err != nil {
		fail(w, err)
		return
	}

	result, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		Username: in.Username,
		Password: in.Password,
	}, orchestrators.RegisterDeps{
		AccountStore: s.stores.AccountStore,
		Tokens:       s.opts.Tokens,
		Enabled:      s.opts.AllowRegistration,
		GenerateID:   s.opts.GenerateID,
		Now:          s.opts.Now,
	})
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.Token{AccessToken: result.AccessToken, TokenType: middleware.TokenType})
}
