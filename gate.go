package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// The dashboard lock is a convenience gate, not a security boundary: one
// shared passcode unlocks the whole dashboard. The passcode is stored as a
// bcrypt hash so it never sits in plain text in the environment.

// signGateToken creates an HS256 session token with 24h expiration.
func signGateToken(secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": "dashboard",
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
		"iss": "compostwatch",
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// parseGateToken validates a session token.
func parseGateToken(secret, tokenStr string) error {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return errors.New("invalid token")
	}
	return nil
}

// handleUnlock checks the passcode and returns a session token. With no
// configured hash the gate is open and any passcode is accepted.
func (a *App) handleUnlock(w http.ResponseWriter, r *http.Request) {
	var req unlockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if a.cfg.GatePasscodeHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(a.cfg.GatePasscodeHash), []byte(req.Passcode)) != nil {
			http.Error(w, "wrong passcode", http.StatusUnauthorized)
			return
		}
	}
	tok, err := signGateToken(a.cfg.JWTSecret)
	if err != nil {
		http.Error(w, "jwt error", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(tokenResp{Token: tok})
}
