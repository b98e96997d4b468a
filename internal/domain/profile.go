package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// ProfileText renders the canonical searchable text of an employee. Field
// order is fixed so the same record always embeds identically. Email is
// deliberately absent; it carries no staffing signal.
func (e Employee) ProfileText() string {
	department := e.Department
	if department == "" {
		department = "Unknown"
	}
	location := e.Location
	if location == "" {
		location = "Unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", e.Name)
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(e.Skills, ", "))
	fmt.Fprintf(&b, "Experience: %d years\n", e.ExperienceYears)
	fmt.Fprintf(&b, "Projects: %s\n", strings.Join(e.Projects, ", "))
	fmt.Fprintf(&b, "Department: %s\n", department)
	fmt.Fprintf(&b, "Location: %s\n", location)
	fmt.Fprintf(&b, "Availability: %s", e.Availability)
	return b.String()
}

// Fingerprint identifies a corpus by content. Any change to a profile, an
// addition or a removal yields a different fingerprint, regardless of record
// order.
func Fingerprint(employees []Employee) string {
	sorted := make([]Employee, len(employees))
	copy(sorted, employees)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	for _, e := range sorted {
		fmt.Fprintf(h, "%d\x00%s\x00", e.ID, e.ProfileText())
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
