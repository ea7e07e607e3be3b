package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-chat/relay/internal/models"
)

func fullProfile() models.ProfileSnapshot {
	return models.ProfileSnapshot{
		Owner: models.Owner{
			Name:       "Ada Yilmaz",
			Title:      "Graduate Student in EEE",
			University: "Example Technical University",
			Email:      "ada@example.edu",
			Bio:        "Researcher focusing on AI and power systems.",
		},
		Thesis: models.Thesis{
			Title:    "AI-based Islanding Detection in Solar Power Plants",
			Advisor:  "Prof. Dr. Advisor",
			Status:   "In Progress",
			Keywords: []string{"XAI", "SHAP", "LIME"},
			Abstract: "An explainable approach to islanding detection.",
		},
		Interests: []string{"Explainable AI", "Renewable Energy Systems"},
		Projects: []models.Project{
			{Name: "Smart Room Climate Controller", Description: "ESP32 HVAC control.", Tech: []string{"ESP32", "MQTT"}, Status: "Completed"},
			{Name: "LoRaWAN Air Quality Monitor", Description: "Long-range monitoring.", Tech: []string{"LoRaWAN", "Grafana"}, Status: "In Progress"},
		},
		Skills: map[string][]string{
			"programming": {"Python", "MATLAB"},
			"ml":          {"PyTorch"},
			"tools":       {"Git"},
			"cloud":       {"AWS"},
		},
		Publications: []models.Publication{
			{Title: "Explainable Islanding Detection", Venue: "IEEE PES", Year: "2025"},
			{Title: "LoRa for Grid Sensing", Venue: "Sensors", Year: "2024"},
		},
		Contact: models.Contact{
			Email:    "ada@example.edu",
			LinkedIn: "https://linkedin.com/in/ada",
			GitHub:   "https://github.com/ada",
		},
	}
}

func TestBuildSystemPrompt_ContainsProjectsAndPublications(t *testing.T) {
	p := fullProfile()
	out := BuildSystemPrompt(p, "en")

	for _, proj := range p.Projects {
		assert.Contains(t, out, proj.Name)
	}
	for _, pub := range p.Publications {
		assert.Contains(t, out, pub.Title)
	}
	assert.Contains(t, out, "- Smart Room Climate Controller [Completed]: ESP32 HVAC control. (Tech: ESP32, MQTT)")
	assert.Contains(t, out, "- Explainable Islanding Detection (IEEE PES, 2025)")
	assert.Contains(t, out, "Keywords: XAI, SHAP, LIME")
	assert.Contains(t, out, "Abstract: An explainable approach to islanding detection.")
	assert.Contains(t, out, "Explainable AI, Renewable Energy Systems")
	assert.NotContains(t, out, NoPublications)
}

func TestBuildSystemPrompt_SectionOrder(t *testing.T) {
	out := BuildSystemPrompt(fullProfile(), "en")

	sections := []string{
		"=== ABOUT ===",
		"=== THESIS ===",
		"=== RESEARCH INTERESTS ===",
		"=== PROJECTS ===",
		"=== SKILLS ===",
		"=== PUBLICATIONS ===",
		"=== INSTRUCTIONS ===",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", s)
		assert.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
}

func TestBuildSystemPrompt_EmptySnapshot(t *testing.T) {
	out := BuildSystemPrompt(models.ProfileSnapshot{}, "")

	assert.NotContains(t, out, "undefined")
	assert.NotContains(t, out, "<nil>")
	assert.NotContains(t, out, "%!")
	assert.NotContains(t, out, "[]")
	assert.Contains(t, out, "Name: N/A")
	assert.Contains(t, out, "Keywords: N/A")
	assert.Contains(t, out, NoPublications)
	assert.Contains(t, out, EmailFallback)
	assert.Contains(t, out, OwnerFallback)
	assert.Contains(t, out, "Respond in English.")
}

func TestBuildSystemPrompt_PartialProject(t *testing.T) {
	p := models.ProfileSnapshot{
		Projects: []models.Project{{Name: "Only Name"}},
	}
	out := BuildSystemPrompt(p, "en")

	assert.Contains(t, out, "- Only Name [N/A]: N/A (Tech: N/A)")
}

func TestBuildSystemPrompt_PublicationLines(t *testing.T) {
	p := fullProfile()
	out := BuildSystemPrompt(p, "en")

	start := strings.Index(out, "=== PUBLICATIONS ===")
	end := strings.Index(out, "=== INSTRUCTIONS ===")
	require.True(t, start >= 0 && end > start)

	block := strings.TrimSpace(out[start+len("=== PUBLICATIONS ===") : end])
	lines := strings.Split(block, "\n")
	assert.Len(t, lines, len(p.Publications))
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "- "), "line %q", line)
	}
}

func TestBuildSystemPrompt_SkillsOrder(t *testing.T) {
	out := BuildSystemPrompt(fullProfile(), "en")

	assert.Contains(t, out, "Programming: Python, MATLAB\nML/AI: PyTorch\nHardware: N/A\nTools: Git\nLanguages: N/A\ncloud: AWS\n")
}

func TestBuildSystemPrompt_EmailFallsBackToOwner(t *testing.T) {
	p := models.ProfileSnapshot{Owner: models.Owner{Name: "Ada", Email: "owner@example.edu"}}
	out := BuildSystemPrompt(p, "en")

	assert.Contains(t, out, "Email: owner@example.edu")
	assert.Contains(t, out, "contact Ada directly at owner@example.edu.")
}

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	p := fullProfile()
	first := BuildSystemPrompt(p, "tr")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildSystemPrompt(p, "tr"))
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"tr", "Turkish"},
		{"TR", "Turkish"},
		{"en", "English"},
		{"", "English"},
		{"de", "English"},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, LanguageName(tc.code))
		})
	}
}

func TestBuildSystemPrompt_LanguageDirective(t *testing.T) {
	assert.Contains(t, BuildSystemPrompt(models.ProfileSnapshot{}, "tr"), "Respond in Turkish.")
	assert.Contains(t, BuildSystemPrompt(models.ProfileSnapshot{}, "fr"), "Respond in English.")
}
