package discovery

import (
	"encoding/json"
	"fmt"
	"os"

	"gint/internal/domain"
)

// Parser loads test definitions from disk
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Load reads and parses the definition stored at path.
func (p *Parser) Load(path string) (*domain.TestDefinition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %w", path, err)
	}

	var def domain.TestDefinition
	if err := json.Unmarshal(content, &def); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	def.Path = path

	return &def, nil
}
