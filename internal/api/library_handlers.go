package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/lutrisart/internal/errors"
	"github.com/vytor/lutrisart/internal/logger"
	"github.com/vytor/lutrisart/internal/models"
)

type replaceAssetRequest struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type replaceGameAssetRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.LibraryService.ListGames(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("returning %d games", len(games))
	writeJSON(w, r, http.StatusOK, games)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	game, err := s.LibraryService.GetGame(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, game)
}

func (s *Server) handleReplaceAsset(w http.ResponseWriter, r *http.Request) {
	var req replaceAssetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		handleError(w, r, errors.NewBadRequestError("path is required"))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		handleError(w, r, errors.NewBadRequestError("url is required"))
		return
	}

	if err := s.LibraryService.ReplaceAsset(r.Context(), req.Path, req.URL); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReplaceGameAsset(w http.ResponseWriter, r *http.Request) {
	id, err := gameIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	slot, err := models.ParseAssetSlot(chi.URLParam(r, "slot"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("slot", err.Error()))
		return
	}

	var req replaceGameAssetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body: "+err.Error()))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		handleError(w, r, errors.NewBadRequestError("url is required"))
		return
	}

	ref, err := s.LibraryService.ReplaceGameAsset(r.Context(), id, slot, req.URL)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ref)
}

func gameIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.FromContext(r.Context()).Warn("invalid game ID: %s", idStr)
		return 0, errors.NewBadRequestError("invalid game id: " + idStr)
	}
	return id, nil
}
