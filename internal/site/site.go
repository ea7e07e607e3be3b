// Package site holds the portfolio owner's editable configuration: the
// profile the assistant is grounded on, the chat widget settings and the relay
// endpoint. It is the Go counterpart of the page's config file.
package site

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/portfolio-chat/relay/internal/models"
)

const ownerPlaceholder = "{owner}"

type Site struct {
	Owner        models.Owner         `yaml:"owner"`
	Social       Social               `yaml:"social"`
	Research     Research             `yaml:"research"`
	Projects     []Project            `yaml:"projects"`
	Publications []models.Publication `yaml:"publications"`
	Skills       map[string][]string  `yaml:"skills"`
	Chatbot      Chatbot              `yaml:"chatbot"`
	APIEndpoint  string               `yaml:"api_endpoint"`
}

type Social struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	ORCID    string `yaml:"orcid"`
	Twitter  string `yaml:"twitter"`
	Website  string `yaml:"website"`
}

type Research struct {
	Thesis    models.Thesis `yaml:"thesis"`
	Interests []string      `yaml:"interests"`
}

// Project carries page-only fields (links, year) on top of what the
// assistant sees.
type Project struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Tech        []string    `yaml:"tech"`
	GitHub      string      `yaml:"github"`
	Demo        string      `yaml:"demo"`
	Year        models.Year `yaml:"year"`
	Status      string      `yaml:"status"`
}

type Chatbot struct {
	Name        string   `yaml:"name"`
	Greeting    string   `yaml:"greeting"`
	Language    string   `yaml:"language"` // "en" | "tr"
	Bilingual   bool     `yaml:"bilingual"`
	Suggestions []string `yaml:"suggestions"`
}

// Load reads a site definition from a YAML file.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML site definition and fills defaults.
func Parse(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse site config: %w", err)
	}
	if strings.TrimSpace(s.Chatbot.Language) == "" {
		s.Chatbot.Language = "en"
	}
	if strings.TrimSpace(s.Chatbot.Name) == "" {
		s.Chatbot.Name = "AI Assistant"
	}
	return &s, nil
}

// BuildContext returns a fresh profile snapshot. The snapshot shares no
// slices or maps with the Site.
func (s *Site) BuildContext() models.ProfileSnapshot {
	projects := make([]models.Project, 0, len(s.Projects))
	for _, p := range s.Projects {
		projects = append(projects, models.Project{
			Name:        p.Name,
			Description: p.Description,
			Tech:        cloneStrings(p.Tech),
			Status:      p.Status,
		})
	}

	skills := make(map[string][]string, len(s.Skills))
	for k, v := range s.Skills {
		skills[k] = cloneStrings(v)
	}

	thesis := s.Research.Thesis
	thesis.Keywords = cloneStrings(thesis.Keywords)

	publications := make([]models.Publication, len(s.Publications))
	copy(publications, s.Publications)

	return models.ProfileSnapshot{
		Owner:        s.Owner,
		Thesis:       thesis,
		Interests:    cloneStrings(s.Research.Interests),
		Projects:     projects,
		Skills:       skills,
		Publications: publications,
		Contact: models.Contact{
			Email:    s.Owner.Email,
			LinkedIn: s.Social.LinkedIn,
			GitHub:   s.Social.GitHub,
			ORCID:    s.Social.ORCID,
			Twitter:  s.Social.Twitter,
			Website:  s.Social.Website,
		},
	}
}

// Greeting renders the welcome message with the owner's name filled in.
func (s *Site) Greeting() string {
	return strings.ReplaceAll(s.Chatbot.Greeting, ownerPlaceholder, s.Owner.Name)
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
