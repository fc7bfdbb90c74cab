package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/ldlf2dfa/internal/ldlfparse"
	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/dekarrin/ldlf2dfa/server/result"
)

// CompileRequest asks the service to parse and compile an LDLf formula.
type CompileRequest struct {
	Formula string `json:"formula"`
}

// DFAResponse summarizes a compiled DFA without its full transition table.
type DFAResponse struct {
	URI          string   `json:"uri"`
	Hash         string   `json:"hash"`
	Formula      string   `json:"formula"`
	Alphabet     []string `json:"alphabet"`
	NumStates    int      `json:"num_states"`
	InitialState int      `json:"initial_state"`
}

// TransitionModel is one transition row in a DFADetailResponse.
type TransitionModel struct {
	Src  int      `json:"src"`
	Dst  int      `json:"dst"`
	Cube []string `json:"cube"`
}

// DFADetailResponse is the full state/transition table of a compiled DFA.
type DFADetailResponse struct {
	DFAResponse
	FinalStates []int             `json:"final_states"`
	Transitions []TransitionModel `json:"transitions"`
}

// AcceptRequest asks whether a trace is accepted by a cached DFA.
type AcceptRequest struct {
	Trace string `json:"trace"`
}

// AcceptResponse reports the result of running a trace against a DFA.
type AcceptResponse struct {
	Accepted bool `json:"accepted"`
}

// HTTPCreateFormula returns a HandlerFunc that parses and compiles an LDLf
// formula to a DFA, caching it by the formula's content hash.
func (api API) HTTPCreateFormula() http.HandlerFunc {
	return Endpoint(api.epCreateFormula)
}

func (api API) epCreateFormula(req *http.Request) result.Result {
	var body CompileRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if strings.TrimSpace(body.Formula) == "" {
		return result.BadRequest("formula: property is empty or missing from request", "empty formula")
	}

	f, err := ldlfparse.Parse(body.Formula)
	if err != nil {
		return result.BadRequest("formula: "+err.Error(), "parse formula: %s", err.Error())
	}

	dfa, err := automaton.ToDFA(f, api.DefaultAlphabet...)
	if err != nil {
		return result.BadRequest("formula: "+err.Error(), "compile formula: %s", err.Error())
	}

	hash, err := api.Backend.Put(req.Context(), f, body.Formula, dfa)
	if err != nil {
		return result.InternalServerError("could not cache compiled DFA: " + err.Error())
	}

	resp := dfaSummary(hash, body.Formula, dfa)
	return result.Created(resp, "formula %q compiled to DFA %s", body.Formula, hash)
}

// HTTPGetFormula returns a HandlerFunc that retrieves the cached DFA for a
// formula's content hash, with its full state and transition table.
func (api API) HTTPGetFormula() http.HandlerFunc {
	return Endpoint(api.epGetFormula)
}

func (api API) epGetFormula(req *http.Request) result.Result {
	hash := requireHashParam(req)

	dfa, err := api.Backend.Get(req.Context(), hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result.NotFound("no cached DFA for hash %s", hash)
		}
		return result.InternalServerError(err.Error())
	}

	resp := DFADetailResponse{
		DFAResponse: dfaSummary(hash, "", dfa),
	}
	for i := 1; i <= dfa.NumStates(); i++ {
		if dfa.IsFinal(i) {
			resp.FinalStates = append(resp.FinalStates, i)
		}
	}
	for _, t := range dfa.Transitions() {
		resp.Transitions = append(resp.Transitions, TransitionModel{
			Src:  t.Src,
			Dst:  t.Dst,
			Cube: cubeAtoms(t.Cube, dfa.Alphabet()),
		})
	}

	return result.OK(resp, "got DFA %s", hash)
}

// HTTPAcceptTrace returns a HandlerFunc that checks a trace against a
// cached DFA.
func (api API) HTTPAcceptTrace() http.HandlerFunc {
	return Endpoint(api.epAcceptTrace)
}

func (api API) epAcceptTrace(req *http.Request) result.Result {
	hash := requireHashParam(req)

	dfa, err := api.Backend.Get(req.Context(), hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return result.NotFound("no cached DFA for hash %s", hash)
		}
		return result.InternalServerError(err.Error())
	}

	var body AcceptRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}

	trace, err := automaton.ParseTrace(body.Trace, dfa.Alphabet())
	if err != nil {
		return result.BadRequest("trace: "+err.Error(), "parse trace: %s", err.Error())
	}

	accepted := dfa.Accepts(trace)
	return result.OK(AcceptResponse{Accepted: accepted}, "DFA %s: trace %q accepted=%v", hash, body.Trace, accepted)
}

func dfaSummary(hash, formula string, dfa *automaton.DFA) DFAResponse {
	return DFAResponse{
		URI:          PathPrefix + "/formulas/" + hash,
		Hash:         hash,
		Formula:      formula,
		Alphabet:     dfa.Alphabet(),
		NumStates:    dfa.NumStates(),
		InitialState: dfa.InitialStateIndex(),
	}
}

func cubeAtoms(cube automaton.Cube, alphabet []string) []string {
	atoms := make([]string, 0, len(cube))
	for _, idx := range cube {
		if idx >= 0 && idx < len(alphabet) {
			atoms = append(atoms, alphabet[idx])
		}
	}
	return atoms
}
