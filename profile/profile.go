// Package profile defines the personas behind debate alter egos.
//
// Profiles ship with two built-in defaults and can be loaded from a YAML
// file, one document per persona, for custom matchups.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes the persona an alter-ego agent simulates.
type Profile struct {
	Name            string `yaml:"name"`
	Gender          string `yaml:"gender"`
	Characteristics string `yaml:"characteristics"`
	Attitudes       string `yaml:"attitudes"`
	Hobbies         string `yaml:"hobbies"`
	Personality     string `yaml:"personality"`
	Interests       string `yaml:"interests"`
	Background      string `yaml:"background"`
}

// Pronouns returns the pronoun set matching the profile's gender.
func (p Profile) Pronouns() string {
	switch strings.ToLower(p.Gender) {
	case "female":
		return "she/her"
	case "male":
		return "he/him"
	default:
		return "they/them"
	}
}

// Describe renders the profile as the multi-line block embedded in system
// prompts.
func (p Profile) Describe() string {
	parts := []string{
		"Gender: " + p.Gender,
		"Characteristics: " + p.Characteristics,
		"Attitudes: " + p.Attitudes,
		"Hobbies: " + p.Hobbies,
		"Personality: " + p.Personality,
		"Interests: " + p.Interests,
		"Background: " + p.Background,
	}
	return strings.Join(parts, "\n")
}

// Validate checks the fields a prompt cannot do without.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Gender == "" {
		return fmt.Errorf("profile %q: gender is required", p.Name)
	}
	return nil
}

// Defaults returns the built-in debate pairing.
func Defaults() (Profile, Profile) {
	alice := Profile{
		Name:            "Alice",
		Gender:          "female",
		Characteristics: "Analytical, thoughtful, modern, complex, dialogue-oriented but firm on principles.",
		Attitudes:       "Progressive, inclusive, feminist, environmentalist, idealistic, collaborative.",
		Hobbies:         "Cinema, music (piano and guitar, indie-rock), retro gaming, reading.",
		Personality:     "Reserved about private life, eloquent, empathetic, determined, calm in tone but radical in content.",
		Interests:       "Civil and social rights, climate justice, migration policies, economic inequalities.",
		Background:      "Law degree, former policy analyst, experienced in social advocacy and public policy.",
	}
	bob := Profile{
		Name:            "Bob",
		Gender:          "male",
		Characteristics: "Charismatic, direct, straightforward, tenacious, assertive, self-ironic, gritty.",
		Attitudes:       "Conservative, patriotic, traditionalist, pragmatic, combative.",
		Hobbies:         "Fantasy literature (Tolkien), fitness and sports, amateur singing.",
		Personality:     "Extroverted, decisive, leadership-oriented, resilient, communicative, politically astute.",
		Interests:       "National identity, geopolitics, traditional family values, security, economic policy.",
		Background:      "Business degree, former consultant, experienced in strategic planning and corporate leadership.",
	}
	return alice, bob
}

// LoadFile reads profiles from a YAML file containing a list of personas.
func LoadFile(path string) ([]Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", path, err)
	}

	var profiles []Profile
	if err := yaml.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profiles %s: %w", path, err)
		}
	}
	return profiles, nil
}
