package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// orderFile is a sales order written by hand. Quantities and prices are kept as text and coerced
// the same way the desk coerces typed input.
type orderFile struct {
	Customer  string          `yaml:"customer"`
	DocDate   string          `yaml:"doc_date"`
	DocNumber string          `yaml:"doc_number"`
	Lines     []orderFileLine `yaml:"lines"`
}

type orderFileLine struct {
	Code     string  `yaml:"code"`
	Quantity string  `yaml:"quantity"`
	Price    *string `yaml:"price"`
}

func loadOrderFile(path string) (orderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return orderFile{}, fmt.Errorf("read order file: %w", err)
	}

	var order orderFile
	if err := yaml.Unmarshal(data, &order); err != nil {
		return orderFile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, l := range order.Lines {
		if l.Code == "" {
			return orderFile{}, fmt.Errorf("invalid %s: line %d: %w", path, i+1, errors.New("code is required"))
		}
	}
	return order, nil
}
