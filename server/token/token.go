// Package token issues and validates the bearer JWTs that authenticate
// requests to the ldlf2dfa HTTP service's mutating endpoints.
package token

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "ldlf2dfa"

// Generate issues a new bearer JWT for acct, signed with a key derived from
// secret and the account's current secret hash and logout time so that
// rotating the account's secret or calling Store.InvalidateTokens
// invalidates every token issued before that point.
func Generate(secret []byte, acct store.Account) (string, error) {
	claims := &jwt.MapClaims{
		"iss": issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
		"sub": acct.ID.String(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	tokStr, err := tok.SignedString(signingKey(secret, acct))
	if err != nil {
		return "", err
	}
	return tokStr, nil
}

// Validate parses and verifies tok, looking up the subject account via db to
// recompute the expected signing key, and returns that account if tok is
// valid and not yet expired.
func Validate(ctx context.Context, tok string, secret []byte, db *store.Store) (store.Account, error) {
	var acct store.Account

	_, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}

		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject UUID: %w", err)
		}

		acct, err = db.GetAccountByID(ctx, id)
		if err != nil {
			if err == store.ErrAccountNotFound {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("subject could not be validated")
		}

		return signingKey(secret, acct), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))

	if err != nil {
		return store.Account{}, err
	}

	return acct, nil
}

func signingKey(secret []byte, acct store.Account) []byte {
	var key []byte
	key = append(key, secret...)
	key = append(key, acct.SecretHash...)
	key = append(key, []byte(fmt.Sprintf("%d", acct.LastLogout.Unix()))...)
	return key
}

// Get extracts the bearer token from req's Authorization header.
func Get(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return tok, nil
}
