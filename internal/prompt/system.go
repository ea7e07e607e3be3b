// Package prompt turns a profile snapshot and a conversation window into the
// message list sent to the completion provider. Everything here is pure: the
// same snapshot, language and history always produce the same messages.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/portfolio-chat/relay/internal/models"
)

// Fallback literals for absent profile fields.
const (
	NotAvailable   = "N/A"
	OwnerFallback  = "the site owner"
	EmailFallback  = "the email provided on the website"
	NoPublications = "No publications listed yet (thesis in progress)."
)

// skillCategories are always rendered, in this order, before any other category.
var skillCategories = []struct {
	key   string
	label string
}{
	{"programming", "Programming"},
	{"ml", "ML/AI"},
	{"hardware", "Hardware"},
	{"tools", "Tools"},
	{"languages", "Languages"},
}

// LanguageName maps the two-letter hint to the language the assistant should answer in.
func LanguageName(code string) string {
	if strings.EqualFold(strings.TrimSpace(code), "tr") {
		return "Turkish"
	}
	return "English"
}

// BuildSystemPrompt renders the system instruction block for one request.
func BuildSystemPrompt(p models.ProfileSnapshot, language string) string {
	var b strings.Builder

	owner := p.Owner
	ref := orDefault(owner.Name, OwnerFallback)
	email := strings.TrimSpace(p.Contact.Email)
	if email == "" {
		email = strings.TrimSpace(owner.Email)
	}

	// Persona + language
	b.WriteString(fmt.Sprintf("You are an AI assistant representing %s, a %s at %s.\n",
		ref, orNA(owner.Title), orNA(owner.University)))
	b.WriteString(fmt.Sprintf("Respond in %s. If the user writes in Turkish, reply in Turkish. If in English, reply in English.\n\n",
		LanguageName(language)))

	b.WriteString("=== ABOUT ===\n")
	b.WriteString(fmt.Sprintf("Name: %s\n", orNA(owner.Name)))
	b.WriteString(fmt.Sprintf("Title: %s\n", orNA(owner.Title)))
	b.WriteString(fmt.Sprintf("University: %s\n", orNA(owner.University)))
	b.WriteString(fmt.Sprintf("Email: %s\n", orNA(email)))
	b.WriteString(fmt.Sprintf("LinkedIn: %s\n", orNA(p.Contact.LinkedIn)))
	b.WriteString(fmt.Sprintf("GitHub: %s\n", orNA(p.Contact.GitHub)))
	b.WriteString(fmt.Sprintf("ORCID: %s\n", orNA(p.Contact.ORCID)))
	b.WriteString(fmt.Sprintf("Bio: %s\n\n", orNA(owner.Bio)))

	thesis := p.Thesis
	b.WriteString("=== THESIS ===\n")
	b.WriteString(fmt.Sprintf("Title: %s\n", orNA(thesis.Title)))
	b.WriteString(fmt.Sprintf("Advisor: %s\n", orNA(thesis.Advisor)))
	b.WriteString(fmt.Sprintf("Status: %s\n", orNA(thesis.Status)))
	b.WriteString(fmt.Sprintf("Keywords: %s\n", joinOrNA(thesis.Keywords)))
	b.WriteString(fmt.Sprintf("Abstract: %s\n\n", orNA(thesis.Abstract)))

	b.WriteString("=== RESEARCH INTERESTS ===\n")
	b.WriteString(joinOrNA(p.Interests))
	b.WriteString("\n\n")

	b.WriteString("=== PROJECTS ===\n")
	if len(p.Projects) == 0 {
		b.WriteString(NotAvailable + "\n")
	}
	for _, proj := range p.Projects {
		b.WriteString(fmt.Sprintf("- %s [%s]: %s (Tech: %s)\n",
			orNA(proj.Name), orNA(proj.Status), orNA(proj.Description), joinOrNA(proj.Tech)))
	}
	b.WriteString("\n")

	b.WriteString("=== SKILLS ===\n")
	writeSkills(&b, p.Skills)
	b.WriteString("\n")

	b.WriteString("=== PUBLICATIONS ===\n")
	if len(p.Publications) == 0 {
		b.WriteString(NoPublications + "\n")
	}
	for _, pub := range p.Publications {
		b.WriteString(fmt.Sprintf("- %s (%s, %s)\n", orNA(pub.Title), orNA(pub.Venue), orNA(pub.Year.String())))
	}
	b.WriteString("\n")

	b.WriteString("=== INSTRUCTIONS ===\n")
	b.WriteString(fmt.Sprintf("- Answer questions about %s's background, research, projects, skills, and contact info.\n", ref))
	b.WriteString("- Be friendly, professional, and concise.\n")
	b.WriteString(fmt.Sprintf("- If asked something you don't know, say so honestly and suggest the user contact %s directly at %s.\n",
		ref, orDefault(email, EmailFallback)))
	b.WriteString("- Never make up information that isn't in the context above.\n")
	b.WriteString("- Keep responses under 200 words unless a detailed explanation is specifically requested.\n")
	b.WriteString("- You can explain technical concepts when asked.")

	return b.String()
}

func writeSkills(b *strings.Builder, skills map[string][]string) {
	known := make(map[string]bool, len(skillCategories))
	for _, cat := range skillCategories {
		known[cat.key] = true
		b.WriteString(fmt.Sprintf("%s: %s\n", cat.label, joinOrNA(skills[cat.key])))
	}

	extra := make([]string, 0, len(skills))
	for key := range skills {
		if !known[key] && strings.TrimSpace(key) != "" {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		b.WriteString(fmt.Sprintf("%s: %s\n", strings.TrimSpace(key), joinOrNA(skills[key])))
	}
}

func orNA(s string) string {
	return orDefault(s, NotAvailable)
}

func orDefault(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

// joinOrNA comma-joins the non-blank items, or returns N/A when there are none.
func joinOrNA(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return NotAvailable
	}
	return strings.Join(kept, ", ")
}
