package corpus

import (
	"testing"

	"staffq/internal/domain"
)

func testDirectory() *Directory {
	return NewDirectory([]domain.Employee{
		{ID: 1, Name: "Alice", Skills: []string{"Python", "Machine Learning"}, ExperienceYears: 6, Availability: domain.Available, Department: "Data"},
		{ID: 2, Name: "Bob", Skills: []string{"Go", "Kubernetes"}, ExperienceYears: 3, Availability: domain.Busy, Department: "Infrastructure"},
		{ID: 3, Name: "Carol", Skills: []string{"python", "SQL"}, ExperienceYears: 8, Availability: domain.Available},
	})
}

func TestDirectory_SearchBySkills(t *testing.T) {
	d := testDirectory()

	got := d.Search(Filter{Skills: []string{"PYTHON"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("expected IDs 1 and 3, got %d and %d", got[0].ID, got[1].ID)
	}

	got = d.Search(Filter{Skills: []string{"sql", "kubernetes"}})
	if len(got) != 2 {
		t.Errorf("expected any-skill match to return 2, got %d", len(got))
	}

	got = d.Search(Filter{Skills: []string{"Machine"}})
	if len(got) != 0 {
		t.Errorf("partial skill names must not match, got %d", len(got))
	}
}

func TestDirectory_SearchByExperience(t *testing.T) {
	d := testDirectory()

	got := d.Search(Filter{MinExperience: 5})
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	// Zero disables the criterion.
	if got := d.Search(Filter{MinExperience: 0}); len(got) != 3 {
		t.Errorf("expected all employees, got %d", len(got))
	}
}

func TestDirectory_SearchByAvailabilityAndDepartment(t *testing.T) {
	d := testDirectory()

	if got := d.Search(Filter{Availability: "AVAILABLE"}); len(got) != 2 {
		t.Errorf("expected 2 available, got %d", len(got))
	}

	got := d.Search(Filter{Department: "data"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only Alice in Data, got %v", got)
	}

	// Employees without a department never match a department filter.
	if got := d.Search(Filter{Department: "Unknown"}); len(got) != 0 {
		t.Errorf("expected no matches for unset department, got %d", len(got))
	}
}

func TestDirectory_SearchCombinesCriteria(t *testing.T) {
	d := testDirectory()

	got := d.Search(Filter{Skills: []string{"Python"}, MinExperience: 7, Availability: "available"})
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected only Carol, got %v", got)
	}
}

func TestDirectory_SearchEmptyFilter(t *testing.T) {
	d := testDirectory()

	if got := d.Search(Filter{}); len(got) != 3 {
		t.Errorf("expected all employees for empty filter, got %d", len(got))
	}
}

func TestDirectory_GetMissing(t *testing.T) {
	if _, ok := testDirectory().Get(99); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestDirectory_FingerprintStable(t *testing.T) {
	if testDirectory().Fingerprint() != testDirectory().Fingerprint() {
		t.Error("fingerprint not stable for identical contents")
	}
}
