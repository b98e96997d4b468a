package prompt

import (
	"strings"
	"testing"

	"staffq/internal/domain"
)

func testShortlist() []domain.ShortlistEntry {
	return []domain.ShortlistEntry{
		{
			Employee: domain.Employee{
				ID:              1,
				Name:            "Alice Johnson",
				Skills:          []string{"Python", "Machine Learning"},
				ExperienceYears: 6,
				Projects:        []string{"Churn Prediction"},
				Availability:    domain.Available,
				Department:      "Data",
				Location:        "Berlin",
			},
			Score: 0.82,
			Rank:  1,
		},
		{
			Employee: domain.Employee{
				ID:              4,
				Name:            "Dan Lee",
				Skills:          []string{"Go", "Kubernetes"},
				ExperienceYears: 3,
				Projects:        []string{"Platform Migration"},
				Availability:    domain.Busy,
			},
			Score: 0.41,
			Rank:  2,
		},
	}
}

func TestBuilder_User_ContainsQueryAndProfiles(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	out, err := b.User("find a python developer", testShortlist())
	if err != nil {
		t.Fatalf("User: %v", err)
	}

	for _, want := range []string{
		`User Query: "find a python developer"`,
		"**Alice Johnson** (6 years experience)",
		"Skills: Python, Machine Learning",
		"Relevance Score: 0.82",
		"**Dan Lee** (3 years experience)",
		"Department: Unknown",
		"rank them by relevance",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("user prompt missing %q:\n%s", want, out)
		}
	}
}

func TestBuilder_User_GroundingInstruction(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	out, err := b.User("anyone", testShortlist())
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if !strings.Contains(out, "employee profiles listed above") {
		t.Error("user prompt missing grounding instruction")
	}
}

func TestBuilder_System(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	if !strings.Contains(b.System(), "HR assistant") {
		t.Errorf("unexpected system prompt: %s", b.System())
	}
}

func TestBuilder_Compose_NumbersAndScores(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	out, err := b.Compose("find a python developer", testShortlist())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	for _, want := range []string{
		"Based on your query 'find a python developer', I found 2 relevant candidate(s):",
		"**1. Alice Johnson** (6 years experience)",
		"   • Skills: Python, Machine Learning",
		"   • Matched Skills: Python",
		"   • Match Score: 82.0%",
		"**2. Dan Lee** (3 years experience)",
		"   • Availability: busy",
		"Would you like more details about any of these candidates or help with scheduling interviews?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fallback answer missing %q:\n%s", want, out)
		}
	}
}

func TestBuilder_Compose_MatchedSkillsFollowQuery(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	out, err := b.Compose("need machine learning and kubernetes experience", testShortlist())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if !strings.Contains(out, "   • Matched Skills: Machine Learning\n") {
		t.Errorf("expected Machine Learning matched for Alice:\n%s", out)
	}
	if !strings.Contains(out, "   • Matched Skills: Kubernetes\n") {
		t.Errorf("expected Kubernetes matched for Dan:\n%s", out)
	}

	// A query with no skill overlap omits the line.
	out, err = b.Compose("who is in berlin", testShortlist())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if strings.Contains(out, "Matched Skills") {
		t.Errorf("expected no matched skills line:\n%s", out)
	}
}

func TestBuilder_Compose_Deterministic(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	first, err := b.Compose("query", testShortlist())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	second, err := b.Compose("query", testShortlist())
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if first != second {
		t.Error("fallback answer is not deterministic")
	}
}

func TestBuilder_Compose_EmptyShortlist(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	out, err := b.Compose("anything", nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if out != NoMatchMessage {
		t.Errorf("expected no-match message, got %q", out)
	}
}
