package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/dekarrin/ldlf2dfa/server/middle"
	"github.com/dekarrin/ldlf2dfa/server/result"
	"github.com/dekarrin/ldlf2dfa/server/serr"
	"github.com/dekarrin/ldlf2dfa/server/token"
	"golang.org/x/crypto/bcrypt"
)

// RegisterAccountRequest registers a new signing-key account.
type RegisterAccountRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// AccountModel describes an account without its secret hash.
type AccountModel struct {
	URI  string `json:"uri"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TokenRequest exchanges an account's name/secret pair for a bearer token.
type TokenRequest struct {
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	AccountID string `json:"account_id"`
}

// HTTPCreateAccount returns a HandlerFunc that registers a new account.
func (api API) HTTPCreateAccount() http.HandlerFunc {
	return Endpoint(api.epCreateAccount)
}

func (api API) epCreateAccount(req *http.Request) result.Result {
	var body RegisterAccountRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if body.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}
	if body.Secret == "" {
		return result.BadRequest("secret: property is empty or missing from request", "empty secret")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Secret), bcrypt.DefaultCost)
	if err != nil {
		return result.InternalServerError("could not hash secret: " + err.Error())
	}

	acct, err := api.Backend.CreateAccount(req.Context(), body.Name, hash)
	if err != nil {
		if errors.Is(err, store.ErrAccountExists) {
			return result.Conflict("an account with that name already exists", "create account %q: %s", body.Name, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	resp := AccountModel{
		URI:  PathPrefix + "/accounts/" + acct.ID.String(),
		ID:   acct.ID.String(),
		Name: acct.Name,
	}
	return result.Created(resp, "account %q (%s) created", acct.Name, acct.ID)
}

// HTTPCreateToken returns a HandlerFunc that exchanges an account's
// name/secret pair for a bearer token.
func (api API) HTTPCreateToken() http.HandlerFunc {
	return Endpoint(api.epCreateToken)
}

func (api API) epCreateToken(req *http.Request) result.Result {
	var body TokenRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	acct, err := api.Backend.GetAccountByName(req.Context(), body.Name)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return result.Unauthorized(serr.ErrBadCredentials.Error(), "account %q: %s", body.Name, err.Error())
		}
		return result.InternalServerError(err.Error())
	}

	if err := bcrypt.CompareHashAndPassword(acct.SecretHash, []byte(body.Secret)); err != nil {
		return result.Unauthorized(serr.ErrBadCredentials.Error(), "account %q: bad secret", body.Name)
	}

	tok, err := token.Generate(api.Secret, acct)
	if err != nil {
		return result.InternalServerError("could not generate bearer token: " + err.Error())
	}

	resp := TokenResponse{Token: tok, AccountID: acct.ID.String()}
	return result.Created(resp, "account %q issued new token", acct.Name)
}

// HTTPDeleteToken returns a HandlerFunc that invalidates every bearer token
// previously issued to the authenticated account.
func (api API) HTTPDeleteToken() http.HandlerFunc {
	return Endpoint(api.epDeleteToken)
}

func (api API) epDeleteToken(req *http.Request) result.Result {
	acct := req.Context().Value(middle.AuthAccount).(store.Account)

	if err := api.Backend.InvalidateTokens(req.Context(), acct.ID); err != nil {
		return result.InternalServerError("could not invalidate tokens: " + err.Error())
	}

	return result.NoContent("account %q logged out", acct.Name)
}
