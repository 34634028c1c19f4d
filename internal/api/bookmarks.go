package api

import "net/http"

// ---------------------------------------------------------------------------
// Bookmarks
// ---------------------------------------------------------------------------

type createBookmarkRequest struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var req createBookmarkRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondBadRequest(w, msg)
		return
	}

	created, err := s.svc.Bookmarks.Create(r.Context(), CallerID(r.Context()), req.URL, req.Title)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListsOfBookmark(w http.ResponseWriter, r *http.Request) {
	lists, err := s.svc.Memberships.ListsOfBookmark(r.Context(), CallerID(r.Context()), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, lists)
}
