package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/profarcana/arcana/internal/config"
	"github.com/profarcana/arcana/internal/themes"
)

// --- reading ---

var readingCmd = &cobra.Command{
	Use:   "reading",
	Short: "Draw and manage tarot readings",
}

var readingNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Draw a new three-card reading",
	Long: `Draw a new three-card past/present/future reading.

Examples:
  arcana reading new --profile ./profile.json
  arcana reading new --resume ./resume.pdf
  arcana reading new --headline "Senior Engineer" --skills go,sql,kubernetes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		resumePath, _ := cmd.Flags().GetString("resume")
		headline, _ := cmd.Flags().GetString("headline")
		skillsStr, _ := cmd.Flags().GetString("skills")

		var p themes.Profile
		switch {
		case profilePath != "":
			data, err := os.ReadFile(profilePath)
			if err != nil {
				return fmt.Errorf("reading profile file: %w", err)
			}
			if err := json.Unmarshal(data, &p); err != nil {
				return fmt.Errorf("parsing profile JSON: %w", err)
			}
		case resumePath != "":
			parsed, err := profileFromResume(resumePath)
			if err != nil {
				return fmt.Errorf("reading resume: %w", err)
			}
			p = parsed
		}
		if headline != "" {
			p.Headline = headline
		}
		if skillsStr != "" {
			for _, s := range strings.Split(skillsStr, ",") {
				if s = strings.TrimSpace(s); s != "" {
					p.Skills = append(p.Skills, s)
				}
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/v1/readings", map[string]any{"profile": p})
		if err != nil {
			return err
		}

		var result readingResponse
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printReading(result)
		return nil
	},
}

var readingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), fmt.Sprintf("/v1/readings?limit=%d", limit))
		if err != nil {
			return err
		}

		var readings []readingResponse
		if err := decodeJSON(resp, &readings); err != nil {
			return err
		}

		if len(readings) == 0 {
			fmt.Println("No readings found.")
			return nil
		}

		for _, r := range readings {
			names := make([]string, len(r.Cards))
			for i, c := range r.Cards {
				names[i] = c.Card.Name
			}
			fmt.Printf("%s  %s  %s\n",
				colorize(colorCyan, truncate(r.ID, 8)),
				r.CreatedAt,
				strings.Join(names, ", "),
			)
		}
		return nil
	},
}

var readingShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/v1/readings/"+args[0])
		if err != nil {
			return err
		}

		var result readingResponse
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printReading(result)
		return nil
	},
}

var readingDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved reading",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/v1/readings/"+args[0])
		if err != nil {
			return err
		}

		var result map[string]string
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Deleted reading %s", args[0])
		return nil
	},
}

func init() {
	readingNewCmd.Flags().String("profile", "", "path to a profile JSON file")
	readingNewCmd.Flags().String("resume", "", "path to a PDF resume")
	readingNewCmd.Flags().String("headline", "", "professional headline")
	readingNewCmd.Flags().String("skills", "", "comma-separated skills")
	readingListCmd.Flags().Int("limit", 20, "maximum number of readings to list")

	readingCmd.AddCommand(readingNewCmd)
	readingCmd.AddCommand(readingListCmd)
	readingCmd.AddCommand(readingShowCmd)
	readingCmd.AddCommand(readingDeleteCmd)
}

// readingResponse mirrors the server's reading payload.
type readingResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Cards     []struct {
		Slot string `json:"slot"`
		Card struct {
			ID       string   `json:"id"`
			Name     string   `json:"name"`
			Keywords []string `json:"keywords"`
		} `json:"card"`
		Narrative string `json:"narrative"`
	} `json:"cards"`
	NarrativeSource string `json:"narrative_source"`
}

// truncate returns at most n leading bytes of s. Server-issued ids are
// ASCII uuids, so byte truncation is safe for display.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func printReading(r readingResponse) {
	fmt.Printf("\n%s  %s\n", colorize(colorBold, "Reading"), colorize(colorCyan, r.ID))
	for _, c := range r.Cards {
		fmt.Printf("\n%s — %s\n", colorize(colorMagenta, titleCase(c.Slot)), colorize(colorBold, c.Card.Name))
		if len(c.Card.Keywords) > 0 {
			fmt.Printf("  Keywords: %s\n", strings.Join(c.Card.Keywords, ", "))
		}
		fmt.Printf("  %s\n", c.Narrative)
	}
	fmt.Println()
}

// --- cards ---

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Browse the card catalog",
}

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		arcana, _ := cmd.Flags().GetString("arcana")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/v1/cards"
		if arcana != "" {
			path += "?arcana=" + arcana
		}
		resp, err := client.get(cmd.Context(), path)
		if err != nil {
			return err
		}

		var cards []struct {
			ID       string   `json:"id"`
			Name     string   `json:"name"`
			Keywords []string `json:"keywords"`
		}
		if err := decodeJSON(resp, &cards); err != nil {
			return err
		}

		for _, c := range cards {
			fmt.Printf("%s  %s  %s\n",
				colorize(colorCyan, c.ID),
				colorize(colorBold, c.Name),
				strings.Join(c.Keywords, ", "),
			)
		}
		return nil
	},
}

var cardsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single card as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/v1/cards/"+args[0])
		if err != nil {
			return err
		}

		var card any
		if err := decodeJSON(resp, &card); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(card)
	},
}

func init() {
	cardsListCmd.Flags().String("arcana", "", "filter by arcana (major or minor)")
	cardsCmd.AddCommand(cardsListCmd)
	cardsCmd.AddCommand(cardsShowCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
