package catalog

import (
    "encoding/json"
    "fmt"
    "os"
)

// Images holds the product photo URLs per gold color variant.
type Images struct {
    Yellow string `json:"yellow"`
    Rose   string `json:"rose"`
    White  string `json:"white"`
}

// Product is a single catalog entry. The catalog is read once at startup
// and never mutated; a product's identity is its position in the list.
type Product struct {
    Name            string  `json:"name"`
    PopularityScore float64 `json:"popularityScore"`
    Weight          float64 `json:"weight"`
    Images          Images  `json:"images"`
}

// Load reads and validates the static product list. Any error here is
// fatal to the caller: a service must not start with a corrupt catalog.
func Load(path string) ([]Product, error) {
    b, err := os.ReadFile(path)
    if err != nil {
        return nil, fmt.Errorf("read catalog: %w", err)
    }
    var products []Product
    if err := json.Unmarshal(b, &products); err != nil {
        return nil, fmt.Errorf("parse catalog: %w", err)
    }
    if len(products) == 0 {
        return nil, fmt.Errorf("catalog %s is empty", path)
    }
    for i, p := range products {
        if err := validate(p); err != nil {
            return nil, fmt.Errorf("catalog entry %d (%q): %w", i, p.Name, err)
        }
    }
    return products, nil
}

// validate enforces the catalog data contract. popularityScore must stay
// in [0,1] so derived ratings stay in [0,5].
func validate(p Product) error {
    if p.Name == "" {
        return fmt.Errorf("missing name")
    }
    if p.PopularityScore < 0 || p.PopularityScore > 1 {
        return fmt.Errorf("popularityScore %v outside [0,1]", p.PopularityScore)
    }
    if p.Weight <= 0 {
        return fmt.Errorf("weight %v must be positive", p.Weight)
    }
    return nil
}
