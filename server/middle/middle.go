// Package middle contains middleware for use with the ldlf2dfa HTTP
// service.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/dekarrin/ldlf2dfa/server/result"
	"github.com/dekarrin/ldlf2dfa/server/token"
	"github.com/google/uuid"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthAccount
)

// RequestIDKey is the context key populated by RequestID.
type RequestIDKey int64

const ReqID RequestIDKey = iota

// AuthHandler is middleware that will accept a request, extract the bearer
// token used for authentication, and make calls to get an Account entity
// that represents the signing-key holder from the token.
//
// Keys are added to the request context before the request is passed to the
// next step in the chain. AuthAccount will contain the authenticated
// account, and AuthLoggedIn will return whether an account is attached
// (only applies for optional auth; for non-optional, not being
// authenticated will result in an HTTP error being returned before the
// request is passed to the next handler).
type AuthHandler struct {
	db            *store.Store
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var acct store.Account

	tok, err := token.Get(req)
	if err != nil {
		if ah.required {
			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			return
		}
	} else {
		lookupAcct, err := token.Validate(req.Context(), tok, ah.secret, ah.db)
		if err != nil {
			if ah.required {
				r := result.Unauthorized("", err.Error())
				time.Sleep(ah.unauthedDelay)
				r.WriteResponse(w)
				return
			}
		} else {
			acct = lookupAcct
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthAccount, acct)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

// RequireAuth returns middleware that rejects any request without a valid
// bearer token for an existing account.
func RequireAuth(db *store.Store, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{db: db, secret: secret, unauthedDelay: unauthDelay, required: true, next: next}
	}
}

// OptionalAuth returns middleware that attaches account info to the request
// context if a valid bearer token is present, but does not reject requests
// without one.
func OptionalAuth(db *store.Store, secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{db: db, secret: secret, unauthedDelay: unauthDelay, required: false, next: next}
	}
}

// RequestID stamps every request's context with a freshly generated UUID
// and echoes it back as the X-Request-Id response header, so a caller can
// correlate a response with the corresponding service log line.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, req *http.Request) {
			id := uuid.New()
			w.Header().Set("X-Request-Id", id.String())
			ctx := context.WithValue(req.Context(), ReqID, id)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

// DontPanic returns a Middleware that performs a panic check as it exits. If
// the function is panicking, it will write out an HTTP response with a
// generic message to the client and add it to the log.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, r)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		return true
	}
	return false
}
