package api

import (
	"net/http"

	"github.com/dekarrin/ldlf2dfa/internal/version"
	"github.com/dekarrin/ldlf2dfa/server/result"
)

// InfoResponse describes the running service.
type InfoResponse struct {
	Version string `json:"version"`
}

// HTTPGetInfo returns a HandlerFunc that reports the running service's
// version.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	return result.OK(InfoResponse{Version: version.Current}, "got service info")
}
