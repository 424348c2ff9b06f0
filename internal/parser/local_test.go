package parser

import (
	"context"
	"testing"
)

const sampleResumeText = `Jane Doe
jane.doe@example.com | (555) 123-4567

Summary
Backend engineer with a focus on reliable data services.

Technical Skills
Go, PostgreSQL, Docker, Kubernetes, machine learning

Experience
Senior Engineer, Acme Corp

Education
State University
`

func TestExtractNameSkipsContactLines(t *testing.T) {
	if got := extractName(sampleResumeText); got != "Jane Doe" {
		t.Fatalf("expected Jane Doe, got %q", got)
	}
}

func TestExtractEmailAndPhone(t *testing.T) {
	if got := emailPattern.FindString(sampleResumeText); got != "jane.doe@example.com" {
		t.Fatalf("expected email, got %q", got)
	}
	if got := phonePattern.FindString(sampleResumeText); got == "" {
		t.Fatalf("expected phone match")
	}
}

func TestExtractSkillsNormalizesAliases(t *testing.T) {
	skills := extractSkills(sampleResumeText)
	want := map[string]bool{
		"Go":               false,
		"PostgreSQL":       false,
		"Docker":           false,
		"Kubernetes":       false,
		"Machine Learning": false,
	}
	for _, s := range skills {
		if _, ok := want[s.Name]; ok {
			want[s.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected skill %s in %v", name, skills)
		}
	}
}

func TestExtractSkillsDeduplicates(t *testing.T) {
	skills := extractSkills("go golang Go")
	if len(skills) != 1 {
		t.Fatalf("expected 1 skill, got %v", skills)
	}
}

func TestExtractSectionStopsAtNextHeading(t *testing.T) {
	summary := extractSection(sampleResumeText, "summary")
	if summary != "Backend engineer with a focus on reliable data services." {
		t.Fatalf("unexpected summary %q", summary)
	}

	education := extractSection(sampleResumeText, "education")
	if education != "State University" {
		t.Fatalf("unexpected education %q", education)
	}
}

func TestExtractTextRejectsUnknownMime(t *testing.T) {
	if _, err := ExtractText(context.Background(),[]byte("hello"), "text/plain", "notes.txt"); err == nil {
		t.Fatalf("expected error for text/plain")
	}
}

func TestNormalizeMimeTypeFallsBackToExtension(t *testing.T) {
	if got := normalizeMimeType("application/octet-stream", "resume.pdf"); got != MimePDF {
		t.Fatalf("expected pdf, got %s", got)
	}
	if got := normalizeMimeType("application/octet-stream; charset=binary", "resume.docx"); got != MimeDOCX {
		t.Fatalf("expected docx, got %s", got)
	}
}
