package api

import (
	"encoding/json"
	"net/http"

	"github.com/Kerhoff/ListboT/internal/service"
)

const problemTypeBase = "https://listbot.kerhoff.dev/errors/"

// ProblemDetails is an RFC 9457 problem document
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code"`
}

func (p *ProblemDetails) write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func statusForKind(kind service.Kind) int {
	switch kind {
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func newProblem(status int, code, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + code,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
		Code:   code,
	}
}

// respondError writes a problem document for a service error. Internal
// causes are logged and never echoed to the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.KindOf(err)
	detail := err.Error()
	if kind == service.KindInternal {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		detail = "An unexpected error occurred"
	}
	newProblem(statusForKind(kind), kind.String(), detail).write(w)
}

func (s *Server) respondBadRequest(w http.ResponseWriter, detail string) {
	newProblem(http.StatusBadRequest, service.KindInvalidArgument.String(), detail).write(w)
}
