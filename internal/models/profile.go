package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProfileSnapshot is the structured profile the assistant is grounded on.
// The client sends a fresh copy with every request; nothing is stored server-side.
type ProfileSnapshot struct {
	Owner        Owner               `json:"owner" yaml:"owner"`
	Thesis       Thesis              `json:"thesis" yaml:"thesis"`
	Interests    []string            `json:"interests" yaml:"interests"`
	Projects     []Project           `json:"projects" yaml:"projects"`
	Skills       map[string][]string `json:"skills" yaml:"skills"`
	Publications []Publication       `json:"publications" yaml:"publications"`
	Contact      Contact             `json:"contact" yaml:"contact"`
}

type Owner struct {
	Name       string `json:"name" yaml:"name"`
	Title      string `json:"title" yaml:"title"`
	University string `json:"university" yaml:"university"`
	Email      string `json:"email" yaml:"email"`
	Bio        string `json:"bio" yaml:"bio"`
	Avatar     string `json:"avatar,omitempty" yaml:"avatar"`
	Location   string `json:"location,omitempty" yaml:"location"`
}

type Thesis struct {
	Title    string   `json:"title" yaml:"title"`
	Advisor  string   `json:"advisor" yaml:"advisor"`
	Year     Year     `json:"year,omitempty" yaml:"year"`
	Status   string   `json:"status" yaml:"status"` // "In Progress" | "Completed" | "Submitted"
	Keywords []string `json:"keywords" yaml:"keywords"`
	Abstract string   `json:"abstract" yaml:"abstract"`
}

type Project struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tech        []string `json:"tech" yaml:"tech"`
	Status      string   `json:"status" yaml:"status"`
}

type Publication struct {
	Title string `json:"title" yaml:"title"`
	Venue string `json:"venue" yaml:"venue"`
	Year  Year   `json:"year" yaml:"year"`
	DOI   string `json:"doi,omitempty" yaml:"doi"`
	Link  string `json:"link,omitempty" yaml:"link"`
}

type Contact struct {
	Email    string `json:"email" yaml:"email"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	GitHub   string `json:"github" yaml:"github"`
	ORCID    string `json:"orcid" yaml:"orcid"`
	Twitter  string `json:"twitter,omitempty" yaml:"twitter"`
	Website  string `json:"website,omitempty" yaml:"website"`
}

// Year is a publication or thesis year. Profiles write it either as a
// number (2024) or a string ("2024", "forthcoming"), so both decode.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = Year(n.String())
	return nil
}

func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{"year must be a scalar"}}
	}
	if node.Tag == "!!null" {
		*y = ""
		return nil
	}
	*y = Year(strings.TrimSpace(node.Value))
	return nil
}

func (y Year) String() string {
	return string(y)
}
