package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
	"github.com/Sumatoshi-tech/titlelens/pkg/render"
)

// maxFilterBody caps the PUT /api/filter request body.
const maxFilterBody = 1 << 10

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Records   int       `json:"records"`
	Timestamp time.Time `json:"timestamp"`
}

// CountResponse is the body of GET /api/records/count.
type CountResponse struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
}

// ChartResponse is the body of GET /api/charts/{chart}.
type ChartResponse struct {
	Chart    dashboard.Chart `json:"chart"`
	Filter   filter.State    `json:"filter"`
	Selected int             `json:"selected"`
	Data     any             `json:"data"`
}

// effectiveState returns the ?type= override when present, or the shared
// filter state. The override never changes the shared state.
func (s *Server) effectiveState(r *http.Request) (filter.State, error) {
	if !r.URL.Query().Has("type") {
		return s.dash.Control().State(), nil
	}

	typ, err := filter.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		return filter.State{}, err
	}

	return filter.State{Type: typ}, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := s.effectiveState(r)
	if err != nil {
		BadRequest(ctx, w, err.Error(), s.logger)

		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatPlot
	}

	renderer, err := render.For(format, s.renderOpts...)
	if err != nil {
		BadRequest(ctx, w, err.Error(), s.logger)

		return
	}

	var buf bytes.Buffer

	err = renderer.Render(&buf, s.dash.Snapshot(ctx, st))
	if err != nil {
		s.logger.ErrorContext(ctx, "render dashboard", "format", format, "error", err)
		InternalError(ctx, w, "render failed", s.logger)

		return
	}

	w.Header().Set("Content-Type", render.ContentType(format))
	w.WriteHeader(http.StatusOK)

	_, err = w.Write(buf.Bytes())
	if err != nil {
		s.logger.WarnContext(ctx, "write dashboard", "error", err)
	}
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	st, err := s.effectiveState(r)
	if err != nil {
		BadRequest(r.Context(), w, err.Error(), s.logger)

		return
	}

	JSON(r.Context(), w, http.StatusOK, s.dash.Snapshot(r.Context(), st), s.logger)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	chart, err := dashboard.ParseChart(chi.URLParam(r, "chart"))
	if err != nil {
		NotFound(ctx, w, err.Error(), s.logger)

		return
	}

	st, err := s.effectiveState(r)
	if err != nil {
		BadRequest(ctx, w, err.Error(), s.logger)

		return
	}

	snap := s.dash.Snapshot(ctx, st)

	data, err := snap.Chart(chart)
	if err != nil {
		NotFound(ctx, w, err.Error(), s.logger)

		return
	}

	JSON(ctx, w, http.StatusOK, ChartResponse{
		Chart:    chart,
		Filter:   snap.Filter,
		Selected: snap.Selected,
		Data:     data,
	}, s.logger)
}

func (s *Server) handleGetFilter(w http.ResponseWriter, r *http.Request) {
	JSON(r.Context(), w, http.StatusOK, s.dash.Control().State(), s.logger)
}

func (s *Server) handlePutFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		Type string `json:"type"`
	}

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFilterBody)).Decode(&body)
	if err != nil {
		BadRequest(ctx, w, "invalid request body: "+err.Error(), s.logger)

		return
	}

	st, err := s.dash.Control().SetType(body.Type)
	if err != nil {
		if errors.Is(err, filter.ErrUnknownType) {
			BadRequest(ctx, w, err.Error(), s.logger)

			return
		}

		InternalError(ctx, w, "set filter failed", s.logger)

		return
	}

	s.logger.InfoContext(ctx, "filter changed", "type", st.Type)

	JSON(ctx, w, http.StatusOK, st, s.logger)
}

func (s *Server) handleRecordCount(w http.ResponseWriter, r *http.Request) {
	JSON(r.Context(), w, http.StatusOK, CountResponse{
		Total:  s.dash.Len(),
		Counts: s.dash.Counts(),
	}, s.logger)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(r.Context(), w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Records:   s.dash.Len(),
		Timestamp: s.now().UTC(),
	}, s.logger)
}

// handleReady reports unavailable until the dataset holds at least one record.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.dash.Len() == 0 {
		Error(r.Context(), w, http.StatusServiceUnavailable, "dataset is empty", s.logger)

		return
	}

	JSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}
