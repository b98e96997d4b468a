package corpus

import (
	"sort"
	"strings"

	"staffq/internal/domain"
)

// Directory holds the loaded employee records, immutable after construction.
// Lookups and filters are safe for concurrent use.
type Directory struct {
	employees []domain.Employee
	byID      map[int]domain.Employee
}

// Filter selects employees for the search endpoint. Zero values disable the
// corresponding criterion; set criteria must all hold.
type Filter struct {
	Skills        []string // match when any listed skill equals any employee skill, case-insensitively
	MinExperience int
	Availability  string
	Department    string
}

// NewDirectory builds a Directory from records with unique IDs.
func NewDirectory(employees []domain.Employee) *Directory {
	sorted := make([]domain.Employee, len(employees))
	copy(sorted, employees)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int]domain.Employee, len(sorted))
	for _, e := range sorted {
		byID[e.ID] = e
	}
	return &Directory{employees: sorted, byID: byID}
}

// All returns every employee ordered by ID. Callers must not mutate the
// returned slice.
func (d *Directory) All() []domain.Employee {
	return d.employees
}

// Get returns the employee with the given ID.
func (d *Directory) Get(id int) (domain.Employee, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// Count returns the number of employees.
func (d *Directory) Count() int {
	return len(d.employees)
}

// Fingerprint identifies the directory contents; see domain.Fingerprint.
func (d *Directory) Fingerprint() string {
	return domain.Fingerprint(d.employees)
}

// Search returns the employees passing every set criterion, ordered by ID.
func (d *Directory) Search(f Filter) []domain.Employee {
	matched := make([]domain.Employee, 0, len(d.employees))
	for _, e := range d.employees {
		if !matchesSkills(e, f.Skills) {
			continue
		}
		if f.MinExperience > 0 && e.ExperienceYears < f.MinExperience {
			continue
		}
		if f.Availability != "" && !strings.EqualFold(string(e.Availability), f.Availability) {
			continue
		}
		if f.Department != "" && !strings.EqualFold(e.Department, f.Department) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

func matchesSkills(e domain.Employee, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, want := range wanted {
		want = strings.TrimSpace(want)
		if want == "" {
			continue
		}
		for _, have := range e.Skills {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}
