// Package report renders an assessment result for saving or printing.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/aipath/internal/careers"
	"github.com/abhisek/aipath/internal/scoring"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatMarkdown, FormatJSON, FormatYAML}
}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text, markdown, json or yaml)", s)
}

// FormatFromPath infers the format from a file extension, defaulting to
// markdown.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".txt":
		return FormatText
	default:
		return FormatMarkdown
	}
}

// Score is one line of the ranked score list.
type Score struct {
	Career string `json:"career" yaml:"career"`
	Title  string `json:"title" yaml:"title"`
	Score  int    `json:"score" yaml:"score"`
}

// Report is the serialisable form of an assessment result.
type Report struct {
	Career      string    `json:"career" yaml:"career"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Skills      []string  `json:"skills" yaml:"skills"`
	NextSteps   []string  `json:"next_steps" yaml:"next_steps"`
	Scores      []Score   `json:"scores" yaml:"scores"`
	MaxScore    int       `json:"max_score" yaml:"max_score"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

// Build converts a result into a Report stamped with at.
func Build(res scoring.Result, at time.Time) Report {
	r := Report{
		Career:      res.Career.String(),
		Title:       res.Profile.Title,
		Description: res.Profile.Description,
		Skills:      res.Profile.Skills,
		NextSteps:   res.Profile.NextSteps,
		MaxScore:    res.Scores.Max(),
		GeneratedAt: at.UTC(),
	}
	for _, st := range res.Scores.Ranked() {
		r.Scores = append(r.Scores, Score{
			Career: st.Career.String(),
			Title:  careers.DisplayName(st.Career),
			Score:  st.Score,
		})
	}
	return r
}

// Write encodes r to w in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, markdown(r))
		return err
	case FormatText, "":
		_, err := io.WriteString(w, text(r))
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}

func markdown(r Report) string {
	var b strings.Builder
	b.WriteString("# Your Perfect AI Career Path\n\n")
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", r.Title, r.Description)

	b.WriteString("### Key Skills to Develop\n\n")
	for _, s := range r.Skills {
		fmt.Fprintf(&b, "- %s\n", s)
	}

	b.WriteString("\n### Your Next Steps\n\n")
	for i, s := range r.NextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}

	b.WriteString("\n### Your Career Match Scores\n\n")
	b.WriteString("| Career | Score |\n|---|---:|\n")
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "| %s | %d/%d |\n", s.Title, s.Score, r.MaxScore)
	}

	fmt.Fprintf(&b, "\n_Generated %s_\n", r.GeneratedAt.Format(time.RFC1123))
	return b.String()
}

func text(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recommended career: %s\n\n", r.Title)
	fmt.Fprintf(&b, "%s\n\n", r.Description)

	b.WriteString("Key skills to develop:\n")
	for _, s := range r.Skills {
		fmt.Fprintf(&b, "  - %s\n", s)
	}

	b.WriteString("\nNext steps:\n")
	for i, s := range r.NextSteps {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}

	b.WriteString("\nCareer match scores:\n")
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "  %-18s %2d/%d  %s\n", s.Title, s.Score, r.MaxScore, bar(s.Score, r.MaxScore, 20))
	}
	return b.String()
}

func bar(score, max, width int) string {
	filled := 0
	if max > 0 {
		filled = score * width / max
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
