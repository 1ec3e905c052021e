package directory

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"example.com/signup/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Activities []seedActivity `yaml:"activities"`
}

type seedActivity struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// LoadSeed reads activities from path, or from the built-in seed when path is empty.
func LoadSeed(path string) ([]domain.Activity, error) {
	if strings.TrimSpace(path) == "" {
		return ParseSeed(defaultSeed)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates a YAML seed document.
func ParseSeed(data []byte) ([]domain.Activity, error) {
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if len(doc.Activities) == 0 {
		return nil, errors.New("seed contains no activities")
	}

	out := make([]domain.Activity, 0, len(doc.Activities))
	for i, a := range doc.Activities {
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("activity %d: %w", i, err)
		}
		participants := make([]string, 0, len(a.Participants))
		participants = append(participants, a.Participants...)
		out = append(out, domain.Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		})
	}
	return out, nil
}

func (a seedActivity) validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("%s: description is required", a.Name)
	}
	if strings.TrimSpace(a.Schedule) == "" {
		return fmt.Errorf("%s: schedule is required", a.Name)
	}
	if a.MaxParticipants <= 0 {
		return fmt.Errorf("%s: max_participants must be > 0", a.Name)
	}
	seen := make(map[string]struct{}, len(a.Participants))
	for _, email := range a.Participants {
		if email == "" {
			return fmt.Errorf("%s: empty participant", a.Name)
		}
		if _, dup := seen[email]; dup {
			return fmt.Errorf("%s: duplicate participant %s", a.Name, email)
		}
		seen[email] = struct{}{}
	}
	return nil
}
