package domain

import (
	"strings"
	"testing"
)

func sampleEmployee() Employee {
	return Employee{
		ID:              1,
		Name:            "Alice Johnson",
		Skills:          []string{"Python", "Machine Learning"},
		ExperienceYears: 6,
		Projects:        []string{"Churn Prediction", "Fraud Detection"},
		Availability:    Available,
		Department:      "Data",
		Location:        "Berlin",
	}
}

func TestProfileText_FieldOrder(t *testing.T) {
	text := sampleEmployee().ProfileText()

	want := "Name: Alice Johnson\n" +
		"Skills: Python, Machine Learning\n" +
		"Experience: 6 years\n" +
		"Projects: Churn Prediction, Fraud Detection\n" +
		"Department: Data\n" +
		"Location: Berlin\n" +
		"Availability: available"
	if text != want {
		t.Errorf("profile text mismatch:\ngot:\n%s\nwant:\n%s", text, want)
	}
}

func TestProfileText_MissingOptionalFields(t *testing.T) {
	e := sampleEmployee()
	e.Department = ""
	e.Location = ""

	text := e.ProfileText()
	if !strings.Contains(text, "Department: Unknown") {
		t.Errorf("expected Unknown department, got:\n%s", text)
	}
	if !strings.Contains(text, "Location: Unknown") {
		t.Errorf("expected Unknown location, got:\n%s", text)
	}
}

func TestProfileText_OmitsEmail(t *testing.T) {
	e := sampleEmployee()
	e.Email = "alice@example.com"

	if strings.Contains(e.ProfileText(), "alice@example.com") {
		t.Error("profile text must not contain the email address")
	}
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := sampleEmployee()
	b := sampleEmployee()
	b.ID = 2
	b.Name = "Bob Smith"

	fp1 := Fingerprint([]Employee{a, b})
	fp2 := Fingerprint([]Employee{b, a})
	if fp1 != fp2 {
		t.Errorf("fingerprint depends on record order: %s vs %s", fp1, fp2)
	}
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	a := sampleEmployee()
	base := Fingerprint([]Employee{a})

	modified := a
	modified.Skills = append([]string{"Go"}, a.Skills...)
	if Fingerprint([]Employee{modified}) == base {
		t.Error("fingerprint unchanged after skill edit")
	}

	extra := sampleEmployee()
	extra.ID = 2
	if Fingerprint([]Employee{a, extra}) == base {
		t.Error("fingerprint unchanged after adding an employee")
	}

	if Fingerprint(nil) == base {
		t.Error("empty corpus shares fingerprint with non-empty corpus")
	}
}
