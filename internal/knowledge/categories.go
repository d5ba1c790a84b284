package knowledge

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var categoriesYAML []byte

// Category describes one known knowledge base category
type Category struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Categories is the set of categories the bot's routing understands
type Categories struct {
	Categories []Category `yaml:"categories"`
}

// Contains reports whether name is a known category
func (c *Categories) Contains(name string) bool {
	for _, category := range c.Categories {
		if category.Name == name {
			return true
		}
	}
	return false
}

// LoadCategories loads the known categories from the embedded YAML file
func LoadCategories() (*Categories, error) {
	var categories Categories
	if err := yaml.Unmarshal(categoriesYAML, &categories); err != nil {
		return nil, fmt.Errorf("failed to parse categories config: %w", err)
	}
	if len(categories.Categories) == 0 {
		return nil, fmt.Errorf("categories config is empty")
	}
	return &categories, nil
}
