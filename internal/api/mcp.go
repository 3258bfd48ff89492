package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/reading"
	"github.com/profarcana/arcana/internal/storage"
	"github.com/profarcana/arcana/internal/themes"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Readings *reading.Service
	Catalog  card.Catalog
}

// NewMCPServer creates an MCP server exposing the reading and catalog
// tools over stdio.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"arcana",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("arcana — career tarot readings drawn from a professional profile."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("draw_reading",
			mcp.WithDescription("Draw a three-card past/present/future career reading for a professional profile."),
			mcp.WithString("profile", mcp.Description("JSON object with headline, summary, positions, skills and education fields; all optional"), mcp.Required()),
		),
		mcpDrawReading(deps),
	)

	s.AddTool(
		mcp.NewTool("get_card",
			mcp.WithDescription("Look up a single tarot card by id."),
			mcp.WithString("id", mcp.Description("Card id, e.g. major-00"), mcp.Required()),
		),
		mcpGetCard(deps),
	)

	s.AddTool(
		mcp.NewTool("list_cards",
			mcp.WithDescription("List the card catalog, optionally filtered by arcana."),
			mcp.WithString("arcana", mcp.Description("Filter: major or minor")),
		),
		mcpListCards(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"tarot://catalog",
			"Card Catalog",
			mcp.WithResourceDescription("Full tarot card catalog as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceCatalog(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"readings://recent",
			"Recent Readings",
			mcp.WithResourceDescription("Last 10 saved readings (ids and drawn cards only)"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceRecent(deps),
	)

	return s
}

func mcpDrawReading(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		profileJSON, err := req.RequireString("profile")
		if err != nil {
			return mcpError("profile is required"), nil
		}

		var p themes.Profile
		if err := json.Unmarshal([]byte(profileJSON), &p); err != nil {
			return mcpError(fmt.Sprintf("invalid profile JSON: %v", err)), nil
		}

		result, err := deps.Readings.NewReading(ctx, &p)
		if errors.Is(err, reading.ErrNoProfileData) {
			return mcpError("profile has no usable data"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("failed to draw reading: %v", err)), nil
		}

		b, err := json.Marshal(result)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal reading: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpGetCard(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		c, ok := deps.Catalog.ByID(id)
		if !ok {
			return mcpError(fmt.Sprintf("card %q not found", id)), nil
		}

		b, err := json.Marshal(c)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal card: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListCards(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		arcana := req.GetString("arcana", "")

		cards := deps.Catalog.AllCards
		switch card.Arcana(arcana) {
		case card.ArcanaMajor:
			cards = deps.Catalog.MajorArcana
		case card.ArcanaMinor:
			cards = deps.Catalog.MinorArcana
		case "":
		default:
			return mcpError(fmt.Sprintf("unknown arcana %q", arcana)), nil
		}

		type cardSummary struct {
			ID       string   `json:"id"`
			Name     string   `json:"name"`
			Arcana   string   `json:"arcana"`
			Keywords []string `json:"keywords"`
		}

		summaries := make([]cardSummary, len(cards))
		for i, c := range cards {
			summaries[i] = cardSummary{
				ID:       c.ID,
				Name:     c.Name,
				Arcana:   string(c.Arcana),
				Keywords: c.Keywords,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal cards: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceCatalog(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(deps.Catalog.AllCards)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpResourceRecent(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		readings, err := deps.Readings.List(10)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("failed to list readings: %w", err)
		}

		type readingSummary struct {
			ID        string   `json:"id"`
			CreatedAt string   `json:"created_at"`
			Cards     []string `json:"cards"`
		}

		summaries := make([]readingSummary, len(readings))
		for i, rd := range readings {
			names := make([]string, len(rd.Cards))
			for j, cr := range rd.Cards {
				names[j] = cr.Card.Name
			}
			summaries[i] = readingSummary{
				ID:        rd.ID,
				CreatedAt: rd.CreatedAt.Format(time.RFC3339),
				Cards:     names,
			}
		}

		b, err := json.Marshal(summaries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal readings: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
