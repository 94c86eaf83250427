// Package catalog holds the reference data the engine scores against:
// the skills a learner can be assessed on and the job roles they can be
// matched to.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

// Category groups related skills for display.
type Category string

const (
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
	CategoryData     Category = "data"
	CategoryInfra    Category = "infrastructure"
	CategoryPractice Category = "practice"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryFrontend,
		CategoryBackend,
		CategoryData,
		CategoryInfra,
		CategoryPractice,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryFrontend:
		return "Frontend"
	case CategoryBackend:
		return "Backend"
	case CategoryData:
		return "Data"
	case CategoryInfra:
		return "Infrastructure"
	case CategoryPractice:
		return "Engineering Practice"
	default:
		return string(c)
	}
}

// Skill is an assessable competency.
type Skill struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Category Category `yaml:"category"`
}

// RoleSkill is one weighted requirement of a role. Weight is 1-10.
type RoleSkill struct {
	SkillID string `yaml:"skill"`
	Weight  int    `yaml:"weight"`
}

// Role is a job role profile. Roles are read-only reference data.
type Role struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Skills      []RoleSkill `yaml:"skills"`
}

type catalogFile struct {
	Skills []Skill `yaml:"skills"`
	Roles  []Role  `yaml:"roles"`
}

// Catalog indexes skills and roles by ID, keeping file order for listing.
type Catalog struct {
	skills    []Skill
	roles     []Role
	skillByID map[string]int
	roleByID  map[string]int
}

// New builds a catalog without validating it.
func New(skills []Skill, roles []Role) *Catalog {
	c := &Catalog{
		skills:    skills,
		roles:     roles,
		skillByID: make(map[string]int, len(skills)),
		roleByID:  make(map[string]int, len(roles)),
	}
	for i, s := range skills {
		c.skillByID[s.ID] = i
	}
	for i, r := range roles {
		c.roleByID[r.ID] = i
	}
	return c
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validate(f.Skills, f.Roles); err != nil {
		return nil, err
	}
	return New(f.Skills, f.Roles), nil
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadOrDefault loads the catalog at path, or the embedded one when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Skills returns all skills in catalog order.
func (c *Catalog) Skills() []Skill {
	out := make([]Skill, len(c.skills))
	copy(out, c.skills)
	return out
}

// Roles returns all roles in catalog order.
func (c *Catalog) Roles() []Role {
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Skill returns the skill with the given ID.
func (c *Catalog) Skill(id string) (Skill, error) {
	i, ok := c.skillByID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %s", id)
	}
	return c.skills[i], nil
}

// Role returns the role with the given ID.
func (c *Catalog) Role(id string) (Role, error) {
	i, ok := c.roleByID[id]
	if !ok {
		return Role{}, fmt.Errorf("role not found: %s", id)
	}
	return c.roles[i], nil
}

// HasSkill reports whether id is a known skill.
func (c *Catalog) HasSkill(id string) bool {
	_, ok := c.skillByID[id]
	return ok
}

// SkillName returns the display name for id, or id itself when unknown.
func (c *Catalog) SkillName(id string) string {
	if i, ok := c.skillByID[id]; ok {
		return c.skills[i].Name
	}
	return id
}

// ByCategory returns the skills in category, sorted by name.
func (c *Catalog) ByCategory(cat Category) []Skill {
	var out []Skill
	for _, s := range c.skills {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
