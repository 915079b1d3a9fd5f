package pricing

import (
    "fmt"
    "math"
    "net/url"
    "strconv"
    "strings"
)

// Criteria holds the optional inclusive bounds on computed price and
// rating. A nil bound is no constraint on that side; nil bounds
// serialize as null in the filter echo.
type Criteria struct {
    MinPrice  *float64 `json:"minPrice"`
    MaxPrice  *float64 `json:"maxPrice"`
    MinRating *float64 `json:"minRating"`
    MaxRating *float64 `json:"maxRating"`
}

// ParseCriteria reads the four optional bounds from query parameters.
// A present but non-numeric bound is an error; callers are expected to
// reject the request rather than silently match nothing.
func ParseCriteria(q url.Values) (Criteria, error) {
    var c Criteria
    var err error
    if c.MinPrice, err = parseBound(q, "minPrice"); err != nil { return Criteria{}, err }
    if c.MaxPrice, err = parseBound(q, "maxPrice"); err != nil { return Criteria{}, err }
    if c.MinRating, err = parseBound(q, "minRating"); err != nil { return Criteria{}, err }
    if c.MaxRating, err = parseBound(q, "maxRating"); err != nil { return Criteria{}, err }
    return c, nil
}

func parseBound(q url.Values, key string) (*float64, error) {
    raw := strings.TrimSpace(q.Get(key))
    if raw == "" { return nil, nil }
    v, err := strconv.ParseFloat(raw, 64)
    if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
        return nil, fmt.Errorf("invalid %s %q: not a number", key, raw)
    }
    return &v, nil
}

// Apply returns the products satisfying every present bound. The
// bounds are inclusive and compose by AND. Output order matches input
// order; the input slice is not modified.
func (c Criteria) Apply(in []PricedProduct) []PricedProduct {
    out := make([]PricedProduct, 0, len(in))
    for _, p := range in {
        if c.MinPrice != nil && p.Price < *c.MinPrice { continue }
        if c.MaxPrice != nil && p.Price > *c.MaxPrice { continue }
        if c.MinRating != nil && p.Rating < *c.MinRating { continue }
        if c.MaxRating != nil && p.Rating > *c.MaxRating { continue }
        out = append(out, p)
    }
    return out
}
