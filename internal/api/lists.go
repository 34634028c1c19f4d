package api

import (
	"net/http"

	"github.com/Kerhoff/ListboT/internal/models"
)

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	lists, err := s.svc.Lists.ListAll(r.Context(), CallerID(r.Context()))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var req models.NewList
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondBadRequest(w, msg)
		return
	}

	created, err := s.svc.Lists.Create(r.Context(), CallerID(r.Context()), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Lists.Get(r.Context(), CallerID(r.Context()), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, list)
}

// handleEditList applies a partial update. Omitted or null fields are left
// unchanged; "parent_id": "" detaches the list from its parent.
func (s *Server) handleEditList(w http.ResponseWriter, r *http.Request) {
	var patch models.ListPatch
	if ok, msg := s.decodeJSON(r, &patch); !ok {
		s.respondBadRequest(w, msg)
		return
	}

	updated, err := s.svc.Lists.Edit(r.Context(), CallerID(r.Context()), r.PathValue("id"), patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Lists.Delete(r.Context(), CallerID(r.Context()), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListStats(w http.ResponseWriter, r *http.Request) {
	counts, err := s.svc.Memberships.Stats(r.Context(), CallerID(r.Context()))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"bookmark_counts": counts})
}

// ---------------------------------------------------------------------------
// Memberships
// ---------------------------------------------------------------------------

func (s *Server) handleAddToList(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Memberships.Add(r.Context(), CallerID(r.Context()),
		r.PathValue("id"), r.PathValue("bookmarkId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFromList(w http.ResponseWriter, r *http.Request) {
	err := s.svc.Memberships.Remove(r.Context(), CallerID(r.Context()),
		r.PathValue("id"), r.PathValue("bookmarkId"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
