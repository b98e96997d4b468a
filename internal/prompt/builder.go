package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"staffq/internal/adapter/analyzer"
	"staffq/internal/domain"
)

//go:embed templates/*.txt
var promptTemplates embed.FS

// NoMatchMessage answers queries whose shortlist came back empty. No model
// is consulted for these.
const NoMatchMessage = "I couldn't find any employees matching your criteria. Please try refining your search."

// Builder renders the grounded generation prompt and the deterministic
// fallback answer from embedded templates.
type Builder struct {
	system    string
	user      *template.Template
	fallback  *template.Template
	tokenizer *analyzer.Tokenizer
}

type promptData struct {
	Query     string
	Shortlist []domain.ShortlistEntry
}

type fallbackData struct {
	Query      string
	Shortlist  []domain.ShortlistEntry
	Candidates []candidate
}

// candidate is a shortlist entry annotated with the skills that overlap the
// query, for the fallback template.
type candidate struct {
	domain.ShortlistEntry
	MatchedSkills []string
}

func NewBuilder() (*Builder, error) {
	system, err := promptTemplates.ReadFile("templates/system.txt")
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}

	user, err := parseTemplate("templates/user.txt")
	if err != nil {
		return nil, err
	}
	fallback, err := parseTemplate("templates/fallback.txt")
	if err != nil {
		return nil, err
	}

	return &Builder{
		system:   strings.TrimSpace(string(system)),
		user:     user,
		fallback: fallback,
		// Matching here only explains results to a reader, so stemming is
		// always on regardless of how the embedder is configured.
		tokenizer: analyzer.NewTokenizer(true),
	}, nil
}

func parseTemplate(name string) (*template.Template, error) {
	content, err := promptTemplates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("template not found: %w", err)
	}
	tmpl, err := template.New(name).Funcs(templateFuncs()).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// System returns the generation system prompt.
func (b *Builder) System() string {
	return b.system
}

// User renders the grounded user prompt: the query plus every shortlisted
// profile, followed by the answering instructions.
func (b *Builder) User(query string, shortlist []domain.ShortlistEntry) (string, error) {
	var buf bytes.Buffer
	if err := b.user.Execute(&buf, promptData{Query: query, Shortlist: shortlist}); err != nil {
		return "", fmt.Errorf("failed to render user prompt: %w", err)
	}
	return buf.String(), nil
}

// Compose renders the deterministic fallback answer for the shortlist. It
// never consults a model and never fails for well-formed input.
func (b *Builder) Compose(query string, shortlist []domain.ShortlistEntry) (string, error) {
	if len(shortlist) == 0 {
		return NoMatchMessage, nil
	}

	data := fallbackData{
		Query:      query,
		Shortlist:  shortlist,
		Candidates: make([]candidate, len(shortlist)),
	}
	queryTerms := termSet(b.tokenizer, query)
	for i, entry := range shortlist {
		data.Candidates[i] = candidate{
			ShortlistEntry: entry,
			MatchedSkills:  matchedSkills(b.tokenizer, queryTerms, entry.Employee.Skills),
		}
	}

	var buf bytes.Buffer
	if err := b.fallback.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render fallback answer: %w", err)
	}
	return buf.String(), nil
}

func termSet(tok *analyzer.Tokenizer, text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, term := range tok.Tokenize(text) {
		set[term] = struct{}{}
	}
	return set
}

// matchedSkills returns the skills sharing at least one term with the query,
// in the order the profile lists them.
func matchedSkills(tok *analyzer.Tokenizer, queryTerms map[string]struct{}, skills []string) []string {
	var matched []string
	for _, skill := range skills {
		for _, term := range tok.Tokenize(skill) {
			if _, ok := queryTerms[term]; ok {
				matched = append(matched, skill)
				break
			}
		}
	}
	return matched
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"formatProfiles": func(shortlist []domain.ShortlistEntry) string {
			var sb strings.Builder
			for _, entry := range shortlist {
				e := entry.Employee
				fmt.Fprintf(&sb, "**%s** (%d years experience)\n", e.Name, e.ExperienceYears)
				fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(e.Skills, ", "))
				fmt.Fprintf(&sb, "Recent Projects: %s\n", strings.Join(e.Projects, ", "))
				fmt.Fprintf(&sb, "Department: %s\n", orUnknown(e.Department))
				fmt.Fprintf(&sb, "Location: %s\n", orUnknown(e.Location))
				fmt.Fprintf(&sb, "Availability: %s\n", e.Availability)
				fmt.Fprintf(&sb, "Relevance Score: %.2f\n\n", entry.Score)
			}
			return strings.TrimRight(sb.String(), "\n")
		},
		"formatCandidates": func(candidates []candidate) string {
			var sb strings.Builder
			for i, c := range candidates {
				e := c.Employee
				fmt.Fprintf(&sb, "**%d. %s** (%d years experience)\n", i+1, e.Name, e.ExperienceYears)
				fmt.Fprintf(&sb, "   • Skills: %s\n", strings.Join(e.Skills, ", "))
				if len(c.MatchedSkills) > 0 {
					fmt.Fprintf(&sb, "   • Matched Skills: %s\n", strings.Join(c.MatchedSkills, ", "))
				}
				fmt.Fprintf(&sb, "   • Recent Projects: %s\n", strings.Join(e.Projects, ", "))
				fmt.Fprintf(&sb, "   • Availability: %s\n", e.Availability)
				fmt.Fprintf(&sb, "   • Match Score: %.1f%%\n\n", c.Score*100)
			}
			return strings.TrimRight(sb.String(), "\n")
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
