package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/2beens/overload/internal/overload/progression"
	"github.com/2beens/overload/internal/overload/training"
	"github.com/2beens/overload/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	defaultRecordsLimit = 20
	defaultSplitDays    = 3
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service        contextService
	metricsManager *metrics.Manager
}

// NewHandler builds a handler with the given service. metricsManager may be nil.
func NewHandler(service contextService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

// GetTrainingContextTool returns the MCP tool handler for get_training_context.
func (h *Handler) GetTrainingContextTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		h.count("get_training_context", "ok")
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: h.service.TrainingContext(ctx)}},
		}, nil, nil
	}
}

// PersonalRecordsInput is the input for get_personal_records.
type PersonalRecordsInput struct {
	UserID string `json:"user_id" jsonschema:"User whose personal records to return"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of records, most recent first (default 20)"`
}

// GetPersonalRecordsTool returns the MCP tool handler for get_personal_records.
func (h *Handler) GetPersonalRecordsTool() func(context.Context, *mcp.CallToolRequest, PersonalRecordsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in PersonalRecordsInput) (*mcp.CallToolResult, any, error) {
		const tool = "get_personal_records"
		if strings.TrimSpace(in.UserID) == "" {
			return h.invalid(tool, "user_id is required"), nil, nil
		}
		facts, err := h.service.PersonalRecords(ctx, in.UserID, limitOrDefault(in.Limit))
		return h.respond(tool, "Error fetching personal records", facts, err), nil, nil
	}
}

// ExerciseHistoryInput is the input for get_exercise_history.
type ExerciseHistoryInput struct {
	UserID     string `json:"user_id" jsonschema:"User whose history to return"`
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise id (e.g. bench_press)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum number of records, most recent first (default 20)"`
}

// GetExerciseHistoryTool returns the MCP tool handler for get_exercise_history.
func (h *Handler) GetExerciseHistoryTool() func(context.Context, *mcp.CallToolRequest, ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseHistoryInput) (*mcp.CallToolResult, any, error) {
		const tool = "get_exercise_history"
		if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.ExerciseID) == "" {
			return h.invalid(tool, "user_id and exercise_id are required"), nil, nil
		}
		facts, err := h.service.ExerciseHistory(ctx, in.UserID, in.ExerciseID, limitOrDefault(in.Limit))
		return h.respond(tool, "Error fetching exercise history", facts, err), nil, nil
	}
}

// UserInput is the input for get_weekly_volume.
type UserInput struct {
	UserID string `json:"user_id" jsonschema:"User whose volume over the last week to return"`
}

// GetWeeklyVolumeTool returns the MCP tool handler for get_weekly_volume.
func (h *Handler) GetWeeklyVolumeTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		const tool = "get_weekly_volume"
		if strings.TrimSpace(in.UserID) == "" {
			return h.invalid(tool, "user_id is required"), nil, nil
		}
		volumes, err := h.service.WeeklyVolume(ctx, in.UserID)
		return h.respond(tool, "Error computing weekly volume", volumes, err), nil, nil
	}
}

// RecommendationInput is the input for get_next_recommendation.
type RecommendationInput struct {
	UserID     string `json:"user_id" jsonschema:"User to recommend for"`
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise id (e.g. bench_press)"`
	Strategy   string `json:"strategy,omitempty" jsonschema:"linear, double-progression, wave-loading or deload (default: the service default)"`
}

// GetNextRecommendationTool returns the MCP tool handler for get_next_recommendation.
func (h *Handler) GetNextRecommendationTool() func(context.Context, *mcp.CallToolRequest, RecommendationInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecommendationInput) (*mcp.CallToolResult, any, error) {
		const tool = "get_next_recommendation"
		if strings.TrimSpace(in.UserID) == "" || strings.TrimSpace(in.ExerciseID) == "" {
			return h.invalid(tool, "user_id and exercise_id are required"), nil, nil
		}
		rec, err := h.service.NextRecommendation(ctx, in.UserID, in.ExerciseID, progression.Strategy(in.Strategy))
		return h.respond(tool, "Error computing recommendation", rec, err), nil, nil
	}
}

// SplitInput is the input for get_weekly_split.
type SplitInput struct {
	UserID string `json:"user_id" jsonschema:"User to plan for"`
	Days   int    `json:"days,omitempty" jsonschema:"Training days available next week, 1 to 7 (default 3)"`
}

// GetWeeklySplitTool returns the MCP tool handler for get_weekly_split.
func (h *Handler) GetWeeklySplitTool() func(context.Context, *mcp.CallToolRequest, SplitInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SplitInput) (*mcp.CallToolResult, any, error) {
		const tool = "get_weekly_split"
		if strings.TrimSpace(in.UserID) == "" {
			return h.invalid(tool, "user_id is required"), nil, nil
		}
		days := in.Days
		if days == 0 {
			days = defaultSplitDays
		}
		plan, err := h.service.WeeklySplit(ctx, in.UserID, days)
		return h.respond(tool, "Error planning weekly split", plan, err), nil, nil
	}
}

func (h *Handler) respond(tool, errPrefix string, v any, err error) *mcp.CallToolResult {
	if err != nil {
		if errors.Is(err, training.ErrInvalidInput) {
			return h.invalid(tool, err.Error())
		}
		log.Errorf("mcp tool %s: %s", tool, err)
		h.count(tool, "error")
		return errorResult(errPrefix + ": " + err.Error())
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		h.count(tool, "error")
		return errorResult("Error encoding response: " + err.Error())
	}

	h.count(tool, "ok")
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) invalid(tool, message string) *mcp.CallToolResult {
	h.count(tool, "invalid")
	return errorResult("Invalid input: " + message)
}

func (h *Handler) count(tool, status string) {
	if h.metricsManager == nil {
		return
	}
	h.metricsManager.CounterMCPToolCalls.With(prometheus.Labels{
		"tool":   tool,
		"status": status,
	}).Inc()
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultRecordsLimit
	}
	return limit
}
