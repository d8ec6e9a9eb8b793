package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
	"github.com/Sumatoshi-tech/titlelens/pkg/filter"
)

// Tool name constants.
const (
	ToolNameCharts = "titlelens_charts"
	ToolNameChart  = "titlelens_chart"
	ToolNameFilter = "titlelens_filter"
)

// Input types (auto-generate JSON schemas via struct tags).

// ChartsInput is the input schema for the titlelens_charts tool.
type ChartsInput struct {
	Type string `json:"type,omitempty" jsonschema:"optional content type override: All, Movie or TV Show"`
}

// ChartInput is the input schema for the titlelens_chart tool.
type ChartInput struct {
	Chart string `json:"chart"          jsonschema:"chart name: years, genres, countries or durations"`
	Type  string `json:"type,omitempty" jsonschema:"optional content type override: All, Movie or TV Show"`
}

// FilterInput is the input schema for the titlelens_filter tool.
type FilterInput struct {
	Type string `json:"type,omitempty" jsonschema:"new shared content type: All, Movie or TV Show; omit to read"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// ChartOutput is the data of a titlelens_chart result.
type ChartOutput struct {
	Chart    dashboard.Chart `json:"chart"`
	Filter   filter.State    `json:"filter"`
	Selected int             `json:"selected"`
	Data     any             `json:"data"`
}

// handleCharts processes titlelens_charts tool calls.
func (s *Server) handleCharts(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ChartsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	st, err := s.effectiveState(input.Type)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(s.dash.Snapshot(ctx, st))
}

// handleChart processes titlelens_chart tool calls.
func (s *Server) handleChart(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ChartInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	chart, err := dashboard.ParseChart(input.Chart)
	if err != nil {
		return errorResult(err)
	}

	st, err := s.effectiveState(input.Type)
	if err != nil {
		return errorResult(err)
	}

	snap := s.dash.Snapshot(ctx, st)

	data, err := snap.Chart(chart)
	if err != nil {
		return errorResult(err)
	}

	return jsonResult(ChartOutput{
		Chart:    chart,
		Filter:   snap.Filter,
		Selected: snap.Selected,
		Data:     data,
	})
}

// handleFilter processes titlelens_filter tool calls.
func (s *Server) handleFilter(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input FilterInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.Type == "" {
		return jsonResult(s.dash.Control().State())
	}

	st, err := s.dash.Control().SetType(input.Type)
	if err != nil {
		return errorResult(err)
	}

	s.logger.InfoContext(ctx, "filter changed", "type", st.Type, "via", "mcp")

	return jsonResult(st)
}

// effectiveState resolves an optional type override against the shared state.
func (s *Server) effectiveState(typ string) (filter.State, error) {
	if typ == "" {
		return s.dash.Control().State(), nil
	}

	parsed, err := filter.ParseType(typ)
	if err != nil {
		return filter.State{}, err
	}

	return filter.State{Type: parsed}, nil
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
