package http_test

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/map-annotation-service/internal/config"
	"github.com/map-annotation-service/internal/delivery/http"
	"github.com/map-annotation-service/internal/delivery/http/handler"
	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/repository/memory"
	"github.com/map-annotation-service/internal/usecase"
	"github.com/map-annotation-service/internal/usecase/dto"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *http.Server {
	t.Helper()
	logger := zap.NewNop()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, CORSOrigins: "*"},
		Map: config.MapConfig{
			CenterX: 4420570.33, CenterY: 5981353.34,
			Zoom: 16, MinZoom: 1, MaxZoom: 17,
			ViewportWidth: 1280, ViewportHeight: 800,
			AutoPanDuration: 250 * time.Millisecond,
		},
	}

	ws, err := usecase.NewWorkspace(cfg.Map, memory.NewLayerRepository(), memory.NewFeatureStore(), nil, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ws.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return http.NewServer(cfg, logger,
		handler.NewDrawHandler(ws, logger),
		handler.NewSelectionHandler(ws, logger),
		handler.NewLayerHandler(ws, logger),
		handler.NewIconHandler(ws, logger),
		handler.NewMapHandler(logger),
	)
}

func do(t *testing.T, srv *http.Server, method, path, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/health", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestServer_CreateMarkerFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, nethttp.MethodPost, "/api/v1/draw/start", `{"category":"checked"}`)
	require.Equal(t, nethttp.StatusOK, status)

	var creation domain.Creation
	require.NoError(t, json.Unmarshal(env.Data, &creation))
	assert.Equal(t, domain.CreationDrawing, creation.State)

	status, env = do(t, srv, nethttp.MethodPost, "/api/v1/draw/end", `{"x":4420600,"y":5981400}`)
	require.Equal(t, nethttp.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &creation))
	assert.Equal(t, domain.CreationAwaitingConfirmation, creation.State)
	require.NotNil(t, creation.Draft)
	assert.Equal(t, "id"+creation.Draft.ID.String(), creation.ModalTitle)

	status, env = do(t, srv, nethttp.MethodPost, "/api/v1/draw/confirm", `{"title":"Pothole","description":"Main St"}`)
	require.Equal(t, nethttp.StatusOK, status)

	var marker domain.Marker
	require.NoError(t, json.Unmarshal(env.Data, &marker))
	assert.Equal(t, creation.Draft.ID, marker.ID)
	assert.Equal(t, "Pothole", marker.Title)

	status, env = do(t, srv, nethttp.MethodGet, "/api/v1/markers?search=POT", "")
	require.Equal(t, nethttp.StatusOK, status)

	var grid dto.GridResponse
	require.NoError(t, json.Unmarshal(env.Data, &grid))
	require.Len(t, grid.Rows, 1)
	assert.Equal(t, int64(marker.ID), grid.Rows[0].Key)
	assert.Equal(t, []dto.TextRange{{Start: 0, End: 3}}, grid.Rows[0].Highlights)

	// Клик по строке таблицы
	status, env = do(t, srv, nethttp.MethodPost, "/api/v1/grid/rows/click",
		`{"category":"checked","id":`+marker.ID.String()+`}`)
	require.Equal(t, nethttp.StatusOK, status)

	var selection domain.Selection
	require.NoError(t, json.Unmarshal(env.Data, &selection))
	assert.Equal(t, domain.SelectionPopupShown, selection.State)
	require.NotNil(t, selection.PopupAnchor)
	assert.Equal(t, marker.Coordinate, *selection.PopupAnchor)

	status, _ = do(t, srv, nethttp.MethodPost, "/api/v1/popup/close", "")
	assert.Equal(t, nethttp.StatusOK, status)
}

func TestServer_LayerGeoJSON(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, nethttp.MethodPost, "/api/v1/draw/start", `{"category":"text"}`)
	do(t, srv, nethttp.MethodPost, "/api/v1/draw/end", `{"x":10,"y":20}`)
	do(t, srv, nethttp.MethodPost, "/api/v1/draw/confirm", `{"title":"Note","description":""}`)

	req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/layers/text/features.geojson", nil)
	resp, err := srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{10, 20}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "Note", fc.Features[0].Properties["title"])
	assert.Equal(t, "mapMarkerText", fc.Features[0].Properties["digitizeLayerName"])
}

func TestServer_InvalidTransitionIsConflict(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, nethttp.MethodPost, "/api/v1/draw/confirm", `{"title":"x"}`)
	assert.Equal(t, nethttp.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)

	status, env = do(t, srv, nethttp.MethodPost, "/api/v1/popup/close", "")
	assert.Equal(t, nethttp.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_TRANSITION", env.Error.Code)
}

func TestServer_ValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown category", nethttp.MethodPost, "/api/v1/draw/start", `{"category":"circle"}`, 400, "INVALID_REQUEST"},
		{"malformed body", nethttp.MethodPost, "/api/v1/draw/end", `{"x":`, 400, "INVALID_REQUEST"},
		{"bad mode", nethttp.MethodPost, "/api/v1/mode", `{"mode":"clustered"}`, 400, "INVALID_REQUEST"},
		{"exponent off step", nethttp.MethodPut, "/api/v1/icons/checked/settings", `{"enabled":true,"exponent":0.7}`, 400, "INVALID_REQUEST"},
		{"exponent out of range", nethttp.MethodPut, "/api/v1/icons/checked/settings", `{"enabled":true,"exponent":11}`, 400, "INVALID_REQUEST"},
		{"empty icon settings", nethttp.MethodPut, "/api/v1/icons/checked/settings", `{}`, 400, "INVALID_REQUEST"},
		{"layer category", nethttp.MethodGet, "/api/v1/layers/circle/style", "", 400, "INVALID_CATEGORY"},
		{"negative resolution", nethttp.MethodGet, "/api/v1/layers/checked/style?resolution=-2", "", 400, "INVALID_RESOLUTION"},
		{"missing x", nethttp.MethodGet, "/api/v1/position?y=1", "", 400, "INVALID_REQUEST"},
		{"short polygon", nethttp.MethodPost, "/api/v1/measure/polygon", `{"points":[[0,0],[1,1]]}`, 400, "INVALID_GEOMETRY"},
		{"unknown route", nethttp.MethodGet, "/api/v1/nope", "", 404, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := do(t, srv, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestServer_IconScaleChangesStyle(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, nethttp.MethodPut, "/api/v1/icons/delete/settings", `{"enabled":true,"exponent":2}`)
	require.Equal(t, nethttp.StatusOK, status)

	status, env := do(t, srv, nethttp.MethodGet, "/api/v1/layers/delete/style?resolution=16", "")
	require.Equal(t, nethttp.StatusOK, status)

	var style dto.StyleResponse
	require.NoError(t, json.Unmarshal(env.Data, &style))
	assert.InDelta(t, 0.25, style.Style.Scale, 1e-12)
	assert.Equal(t, "/static/img/comment-delete.svg", style.Style.Icon.Src)

	status, env = do(t, srv, nethttp.MethodGet, "/api/v1/icons/settings", "")
	require.Equal(t, nethttp.StatusOK, status)

	var settings []dto.IconSettingView
	require.NoError(t, json.Unmarshal(env.Data, &settings))
	require.Len(t, settings, 3)
	assert.True(t, settings[1].Setting.Enabled)
	assert.Equal(t, domain.CategoryDelete, settings[1].Category)
}

func TestServer_IconCheckboxOnlyToggle(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, nethttp.MethodPut, "/api/v1/icons/text/settings", `{"exponent":2.5}`)
	require.Equal(t, nethttp.StatusOK, status)

	status, env := do(t, srv, nethttp.MethodPut, "/api/v1/icons/text/settings", `{"enabled":false}`)
	require.Equal(t, nethttp.StatusOK, status)

	var view dto.IconSettingView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.False(t, view.Setting.Enabled)
	assert.Equal(t, 2.5, view.Setting.Exponent)
}

func TestServer_SelectAndDeselect(t *testing.T) {
	srv := newTestServer(t)

	do(t, srv, nethttp.MethodPost, "/api/v1/draw/start", `{"category":"delete"}`)
	_, env := do(t, srv, nethttp.MethodPost, "/api/v1/draw/end", `{"x":100,"y":200}`)
	var creation domain.Creation
	require.NoError(t, json.Unmarshal(env.Data, &creation))
	do(t, srv, nethttp.MethodPost, "/api/v1/draw/confirm", `{}`)

	status, env := do(t, srv, nethttp.MethodPost, "/api/v1/select",
		`{"category":"delete","id":`+creation.Draft.ID.String()+`}`)
	require.Equal(t, nethttp.StatusOK, status)

	var selection domain.Selection
	require.NoError(t, json.Unmarshal(env.Data, &selection))
	assert.Equal(t, domain.SelectionPopupShown, selection.State)

	status, env = do(t, srv, nethttp.MethodPost, "/api/v1/select", `{}`)
	require.Equal(t, nethttp.StatusOK, status)
	var cleared domain.Selection
	require.NoError(t, json.Unmarshal(env.Data, &cleared))
	assert.Equal(t, domain.SelectionIdle, cleared.State)
	assert.Nil(t, cleared.Active)
	assert.Nil(t, cleared.PopupAnchor)

	status, env = do(t, srv, nethttp.MethodGet, "/api/v1/workspace", "")
	require.Equal(t, nethttp.StatusOK, status)

	var snap dto.WorkspaceSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, 1, snap.MarkerCount)
	assert.Equal(t, 17.0, snap.View.Zoom)
}

func TestServer_PositionAndMeasure(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, nethttp.MethodGet, "/api/v1/position?x=0&y=0", "")
	require.Equal(t, nethttp.StatusOK, status)

	var pos dto.PositionResponse
	require.NoError(t, json.Unmarshal(env.Data, &pos))
	assert.InDelta(t, 0, pos.Lon, 1e-9)
	assert.InDelta(t, 0, pos.Lat, 1e-9)

	status, env = do(t, srv, nethttp.MethodPost, "/api/v1/measure/line", `{"points":[[0,0],[1000,0]]}`)
	require.Equal(t, nethttp.StatusOK, status)

	var m dto.MeasureResponse
	require.NoError(t, json.Unmarshal(env.Data, &m))
	// На экваторе масштаб EPSG:3857 равен 1
	assert.InDelta(t, 1000, m.Length, 5)
}
