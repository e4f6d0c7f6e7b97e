package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/akinsella123/CourseFindr/internal/bootstrap"
	"github.com/akinsella123/CourseFindr/internal/config"
	"github.com/akinsella123/CourseFindr/internal/core/domain"
	"github.com/akinsella123/CourseFindr/internal/observability/logging"
)

// The MCP server exposes the matching engine to LLM agents over stdio:
// course recommendation, skill extraction, and catalog listing as tools.
func main() {
	cfg := config.Load()
	logging.Setup("mcp", cfg.LogLevel)

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close(ctx)

	s := server.NewMCPServer("coursefindr", "1.0.0", server.WithToolCapabilities(false))

	s.AddTool(mcp.NewTool("recommend_courses",
		mcp.WithDescription("Rank catalog courses against a student profile of skills, interests and constraints."),
		mcp.WithString("skills", mcp.Description("Comma-separated skills, e.g. \"python, sql\".")),
		mcp.WithString("interests", mcp.Description("Comma-separated interests.")),
		mcp.WithString("career_goal", mcp.Description("Free-text career goal.")),
		mcp.WithString("location", mcp.Description("Preferred location.")),
		mcp.WithString("modality", mcp.Description("One of in-person, online, hybrid.")),
		mcp.WithNumber("max_tuition", mcp.Description("Upper tuition bound.")),
		mcp.WithNumber("max_duration_weeks", mcp.Description("Upper duration bound in weeks.")),
		mcp.WithNumber("top_k", mcp.Description("Maximum matches to return.")),
	), recommendHandler(app))

	s.AddTool(mcp.NewTool("extract_skills",
		mcp.WithDescription("Extract known skill and interest tags from free text such as a resume."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The text to analyze.")),
	), extractHandler(app))

	s.AddTool(mcp.NewTool("list_courses",
		mcp.WithDescription("List the current course catalog."),
	), listCoursesHandler(app))

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("mcp server error: %v", err)
	}
}

func recommendHandler(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profile := domain.StudentProfile{
			Skills:     splitList(req.GetString("skills", "")),
			Interests:  splitList(req.GetString("interests", "")),
			CareerGoal: req.GetString("career_goal", ""),
			Location:   req.GetString("location", ""),
			Modality:   domain.Modality(req.GetString("modality", "")),
		}
		if v := req.GetFloat("max_tuition", -1); v >= 0 {
			profile.MaxTuition = &v
		}
		if v := req.GetFloat("max_duration_weeks", -1); v >= 0 {
			profile.MaxDurationWk = &v
		}
		topK := int(req.GetFloat("top_k", 0))

		rec, err := app.RecommendUC.Recommend(ctx, profile, topK)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(rec)
	}
}

func extractHandler(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := req.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		extraction, err := app.ExtractUC.ExtractFromText(ctx, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(extraction)
	}
}

func listCoursesHandler(app *bootstrap.App) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		courses, err := app.CatalogUC.ListCourses(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"courses": courses, "total": len(courses)})
	}
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
