// Package api provides HTTP API endpoints for the ldlf2dfa service: account
// registration, bearer-token issuance, and LDLf formula compilation/caching
// against the automaton backend.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/dekarrin/ldlf2dfa/server/middle"
	"github.com/dekarrin/ldlf2dfa/server/result"
	"github.com/dekarrin/ldlf2dfa/server/serr"
	"github.com/go-chi/chi/v5"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/api/v1"

// API holds parameters for endpoints needed to run and the cache backend
// that performs most of the actual logic. To use API, create one and call
// Router to get a handler ready to mount on a server.
type API struct {
	// Backend caches compiled DFAs and holds registered accounts.
	Backend *store.Store

	// UnauthDelay is the amount of time that the auth middleware pauses
	// before responding with an HTTP-401 to a request lacking a valid bearer
	// token, to deprioritize such requests from processing and I/O. Other
	// error responses, including endpoint 401s, are not delayed.
	UnauthDelay time.Duration

	// Secret is the secret used to sign bearer tokens.
	Secret []byte

	// DefaultAlphabet, if non-empty, fixes the order newly compiled
	// formulas' atoms are reported and encoded in, per
	// automaton.ToDFA's preferredOrder parameter.
	DefaultAlphabet []string
}

// Router builds the chi router that serves this API, mounted at
// PathPrefix.
func (api API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middle.RequestID())
	r.Use(middle.DontPanic())

	r.Get("/info", api.HTTPGetInfo())

	r.Post("/accounts", api.HTTPCreateAccount())
	r.Post("/tokens", api.HTTPCreateToken())

	authed := func(next http.Handler) http.Handler {
		return middle.RequireAuth(api.Backend, api.Secret, api.UnauthDelay)(next)
	}
	optAuthed := func(next http.Handler) http.Handler {
		return middle.OptionalAuth(api.Backend, api.Secret, api.UnauthDelay)(next)
	}

	r.With(authed).Delete("/tokens", api.HTTPDeleteToken())
	r.With(authed).Post("/formulas", api.HTTPCreateFormula())
	r.With(optAuthed).Get("/formulas/{hash}", api.HTTPGetFormula())
	r.With(authed).Post("/formulas/{hash}/accepts", api.HTTPAcceptTrace())

	return r
}

func getURLParam(r *http.Request, key string) (string, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return "", fmt.Errorf("parameter does not exist")
	}
	return val, nil
}

func requireHashParam(r *http.Request) string {
	val, err := getURLParam(r, "hash")
	if err != nil {
		panic(err.Error())
	}
	return val
}

// parseJSON decodes req's JSON body into v, which must be a pointer. It
// restores the request body afterward so other middleware may also read
// it.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")

	if strings.ToLower(contentType) != "application/json" {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return serr.New("malformed JSON in request", err, serr.ErrBodyUnmarshal)
	}

	return nil
}

// EndpointFunc is the signature every endpoint implementation has; Endpoint
// adapts one to an http.HandlerFunc.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint adapts an EndpointFunc into an http.HandlerFunc, handling panic
// recovery and response logging uniformly.
func Endpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer panicTo500(w, req)
		r := ep(req)

		if r.Status == 0 {
			logHTTPResponse("ERROR", req, http.StatusInternalServerError, "endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if err := r.PrepareMarshaledResponse(); err != nil {
			newResp := result.Err(r.Status, "An internal server error occurred", "could not marshal JSON response: "+err.Error())
			newResp.WriteResponse(w)
			return
		}

		if r.IsErr {
			logHTTPResponse("ERROR", req, r.Status, r.InternalMsg)
		} else {
			logHTTPResponse("INFO", req, r.Status, r.InternalMsg)
		}

		r.WriteResponse(w)
	}
}

func panicTo500(w http.ResponseWriter, req *http.Request) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		).WriteResponse(w)
		return true
	}
	return false
}

func logHTTPResponse(level string, req *http.Request, respStatus int, msg string) {
	for len(level) < 5 {
		level += " "
	}

	remoteIP := strings.SplitN(req.RemoteAddr, ":", 2)[0]
	log.Printf("%s %s %s %s: HTTP-%d %s", level, remoteIP, req.Method, req.URL.Path, respStatus, msg)
}
