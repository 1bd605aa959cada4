package api_test

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lutrisart/internal/api"
	"github.com/vytor/lutrisart/internal/errors"
	"github.com/vytor/lutrisart/internal/models"
	"github.com/vytor/lutrisart/internal/testutil/mocks"
)

func newTestServer(svc *mocks.MockLibraryService) http.Handler {
	return (&api.Server{LibraryService: svc}).Routes()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(new(mocks.MockLibraryService)), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestListGames_WireShape(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	game := models.NewEnrichedGame(
		models.GameRecord{ID: 1, Name: "Doom", Slug: "doom", InstalledAt: 1000, HasCustomBanner: 1, Playtime: 12.5},
		models.AssetRef{Path: "/c/doom-cover.jpg", Width: 64, Height: 64},
		models.AssetRef{},
	)
	svc.On("ListGames", mock.Anything).Return([]models.EnrichedGame{game}, nil)

	rec := do(t, newTestServer(svc), http.MethodGet, "/api/games", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{
		"game": {
			"id": 1, "name": "Doom", "slug": "doom", "lastplayed": 0, "installed_at": 1000,
			"has_custom_banner": 1, "has_custom_coverart_big": 0, "playtime": 12.5
		},
		"coverart_path": "/c/doom-cover.jpg", "coverart_width": 64, "coverart_height": 64,
		"banner_path": "", "banner_width": 0, "banner_height": 0
	}]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestListGames_EmptyIsArray(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	svc.On("ListGames", mock.Anything).Return([]models.EnrichedGame{}, nil)

	rec := do(t, newTestServer(svc), http.MethodGet, "/api/games", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListGames_CatalogUnavailable(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	svc.On("ListGames", mock.Anything).
		Return(nil, errors.NewCatalogUnavailableError("/home/p/pga.db", stderrors.New("no such file")))

	rec := do(t, newTestServer(svc), http.MethodGet, "/api/games", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"CATALOG_UNAVAILABLE","message":"catalog unavailable: /home/p/pga.db: no such file"}}`, rec.Body.String())
}

func TestGetGame(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	game := models.NewEnrichedGame(models.GameRecord{ID: 7, Name: "Quake", Slug: "quake"}, models.AssetRef{}, models.AssetRef{})
	svc.On("GetGame", mock.Anything, int64(7)).Return(&game, nil)

	rec := do(t, newTestServer(svc), http.MethodGet, "/api/games/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"slug":"quake"`)
}

func TestGetGame_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
		code   string
	}{
		{name: "invalid id", path: "/api/games/abc", status: http.StatusBadRequest, code: errors.ErrCodeBadRequest},
		{name: "not found", path: "/api/games/9", err: errors.NewNotFoundError("game", 9), status: http.StatusNotFound, code: errors.ErrCodeNotFound},
		{name: "directory unavailable", path: "/api/games/9", err: errors.NewDirectoryUnavailableError("/b", nil), status: http.StatusInternalServerError, code: errors.ErrCodeDirectoryUnavailable},
		{name: "unexpected", path: "/api/games/9", err: stderrors.New("boom"), status: http.StatusInternalServerError, code: errors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockLibraryService)
			if tt.err != nil {
				svc.On("GetGame", mock.Anything, int64(9)).Return(nil, tt.err)
			}

			rec := do(t, newTestServer(svc), http.MethodGet, tt.path, "")

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
			svc.AssertExpectations(t)
		})
	}
}

func TestReplaceAsset(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	svc.On("ReplaceAsset", mock.Anything, "/c/doom.jpg", "https://img.example/doom.jpg").Return(nil)

	rec := do(t, newTestServer(svc), http.MethodPost, "/api/assets/replace",
		`{"path":"/c/doom.jpg","url":"https://img.example/doom.jpg"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestReplaceAsset_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `path=/c/doom.jpg`},
		{name: "missing path", body: `{"url":"https://img.example/doom.jpg"}`},
		{name: "missing url", body: `{"path":"/c/doom.jpg"}`},
		{name: "unknown field", body: `{"path":"/c/doom.jpg","url":"https://x","force":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockLibraryService)

			rec := do(t, newTestServer(svc), http.MethodPost, "/api/assets/replace", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
			svc.AssertNotCalled(t, "ReplaceAsset", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReplaceAsset_FetchFailed(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	svc.On("ReplaceAsset", mock.Anything, "/c/doom.jpg", "http://127.0.0.1:1/x").
		Return(errors.NewFetchFailedError("http://127.0.0.1:1/x", "request failed", stderrors.New("connection refused")))

	rec := do(t, newTestServer(svc), http.MethodPost, "/api/assets/replace",
		`{"path":"/c/doom.jpg","url":"http://127.0.0.1:1/x"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"FETCH_FAILED"`)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestReplaceGameAsset(t *testing.T) {
	svc := new(mocks.MockLibraryService)
	ref := &models.AssetRef{Path: "/b/doom.jpg", Width: 460, Height: 215}
	svc.On("ReplaceGameAsset", mock.Anything, int64(1), models.SlotBanner, "https://img.example/b.png").Return(ref, nil)

	rec := do(t, newTestServer(svc), http.MethodPost, "/api/games/1/assets/banner", `{"url":"https://img.example/b.png"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"path":"/b/doom.jpg","width":460,"height":215}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestReplaceGameAsset_UnknownSlot(t *testing.T) {
	svc := new(mocks.MockLibraryService)

	rec := do(t, newTestServer(svc), http.MethodPost, "/api/games/1/assets/icon", `{"url":"https://img.example/i.png"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"VALIDATION_ERROR"`)
	svc.AssertNotCalled(t, "ReplaceGameAsset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
