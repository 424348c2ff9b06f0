package parser

import (
	"context"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[\s.-])?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
)

var sectionHeadings = map[string]string{
	"summary":            "summary",
	"profile":            "summary",
	"objective":          "summary",
	"skills":             "skills",
	"technical skills":   "skills",
	"competencies":       "skills",
	"expertise":          "skills",
	"experience":         "experience",
	"work experience":    "experience",
	"employment":         "experience",
	"employment history": "experience",
	"education":          "education",
}

// skillAliases maps lowercase tokens found in resume text to display names.
var skillAliases = map[string]string{
	"python":           "Python",
	"javascript":       "JavaScript",
	"js":               "JavaScript",
	"typescript":       "TypeScript",
	"ts":               "TypeScript",
	"java":             "Java",
	"c#":               "C#",
	"c++":              "C++",
	"go":               "Go",
	"golang":           "Go",
	"rust":             "Rust",
	"react":            "React",
	"reactjs":          "React",
	"vue":              "Vue.js",
	"vuejs":            "Vue.js",
	"angular":          "Angular",
	"node":             "Node.js",
	"nodejs":           "Node.js",
	"express":          "Express",
	"django":           "Django",
	"flask":            "Flask",
	"fastapi":          "FastAPI",
	"sql":              "SQL",
	"mysql":            "MySQL",
	"postgresql":       "PostgreSQL",
	"postgres":         "PostgreSQL",
	"mongodb":          "MongoDB",
	"redis":            "Redis",
	"aws":              "AWS",
	"azure":            "Azure",
	"gcp":              "Google Cloud Platform",
	"docker":           "Docker",
	"kubernetes":       "Kubernetes",
	"k8s":              "Kubernetes",
	"git":              "Git",
	"terraform":        "Terraform",
	"machine learning": "Machine Learning",
	"ml":               "Machine Learning",
	"nlp":              "Natural Language Processing",
	"data science":     "Data Science",
	"data analysis":    "Data Analysis",
}

// LocalParser extracts resume fields with text extraction plus pattern
// matching. It is the default collaborator when no external parsing service
// is configured.
type LocalParser struct{}

// Parse extracts text and pulls out contact details, skills, and sections.
func (LocalParser) Parse(ctx context.Context, data []byte, mimeType, fileName string) (ParsedResume, error) {
	text, err := ExtractText(ctx, data, mimeType, fileName)
	if err != nil {
		return ParsedResume{}, err
	}
	if strings.TrimSpace(text) == "" {
		return ParsedResume{}, ErrUnsupported
	}

	parsed := ParsedResume{
		Name:    extractName(text),
		Email:   emailPattern.FindString(text),
		Phone:   strings.TrimSpace(phonePattern.FindString(text)),
		Summary: extractSection(text, "summary"),
		Skills:  extractSkills(text),
	}
	if inst := extractSection(text, "education"); inst != "" {
		if line := firstLine(inst); line != "" {
			parsed.Education = []Education{{Institution: line}}
		}
	}
	if exp := extractSection(text, "experience"); exp != "" {
		if line := firstLine(exp); line != "" {
			parsed.Experience = []Experience{{Title: line}}
		}
	}
	return parsed, nil
}

// extractName takes the first non-empty line that is not a contact detail.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if emailPattern.MatchString(trimmed) || phonePattern.MatchString(trimmed) {
			continue
		}
		if len(trimmed) > 80 {
			continue
		}
		return trimmed
	}
	return ""
}

func extractSkills(text string) []Skill {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var skills []Skill

	// Multi-word aliases first, then single tokens.
	for alias, name := range skillAliases {
		if !strings.Contains(alias, " ") {
			continue
		}
		if strings.Contains(lower, alias) {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				skills = append(skills, Skill{Name: name})
			}
		}
	}

	tokens := strings.FieldsFunc(lower, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', ',', ';', ':', '(', ')', '|', '/', '·', '•':
			return true
		}
		return false
	})
	for _, token := range tokens {
		token = strings.Trim(token, ".")
		name, ok := skillAliases[token]
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		skills = append(skills, Skill{Name: name})
	}
	return skills
}

// extractSection returns the text between a recognized heading of the wanted
// kind and the next recognized heading.
func extractSection(text, want string) string {
	lines := strings.Split(text, "\n")
	var collected []string
	collecting := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		heading, isHeading := sectionHeadings[strings.ToLower(strings.TrimRight(trimmed, ":"))]
		if isHeading {
			if collecting {
				break
			}
			if heading == want {
				collecting = true
			}
			continue
		}
		if collecting && trimmed != "" {
			collected = append(collected, trimmed)
		}
	}
	return strings.Join(collected, "\n")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
