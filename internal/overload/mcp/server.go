package mcp

import (
	"github.com/2beens/overload/internal/telemetry/metrics"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server exposing the engine's numeric facts: training
// context, personal records, exercise history, weekly volume, next session
// recommendation and weekly split. The backend mounts it at /mcp, and
// cmd/overload_mcp serves it over stdio.
func NewServer(engine engine, catalog trainingCatalog, metricsManager *metrics.Manager) *mcp.Server {
	h := NewHandler(NewContextService(engine, catalog), metricsManager)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "overload-engine",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_training_context",
		Description: "Returns the tables the engine judges against: weekly working-set targets per muscle group (low, high, midpoint), and per exercise category the weight increment, double-progression rep range and starter scheme. Use before interpreting volume or recommendations.",
	}, h.GetTrainingContextTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Returns the user's personal records across all exercises, most recent first: exercise, date, weight, reps, estimated 1RM (Epley). Args: user_id; optional: limit.",
	}, h.GetPersonalRecordsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Returns every recorded set of one exercise, most recent first, with estimated 1RM and whether it was a PR. Args: user_id, exercise_id; optional: limit.",
	}, h.GetExerciseHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_volume",
		Description: "Returns weekly working sets, reps, tonnage and training days per muscle group over the last 7 days, with the target range and recovery status (undertrained, recovered, overtrained). Arg: user_id.",
	}, h.GetWeeklyVolumeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_next_recommendation",
		Description: "Returns the target weight and reps for the next session of an exercise, the strategy applied and its rationale. A plateau forces a deload whatever strategy is requested. Args: user_id, exercise_id; optional: strategy.",
	}, h.GetNextRecommendationTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_split",
		Description: "Returns a plan for next week: per training day the muscle groups to prioritize with reasons and suggested exercises, plus recommended weekly frequency per muscle group. Args: user_id; optional: days (1-7).",
	}, h.GetWeeklySplitTool())

	return s
}
