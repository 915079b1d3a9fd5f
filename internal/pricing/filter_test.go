package pricing

import (
    "net/url"
    "testing"
)

func f(v float64) *float64 { return &v }

func priced(name string, price, rating float64) PricedProduct {
    p := PricedProduct{Price: price, Rating: rating}
    p.Name = name
    return p
}

func names(in []PricedProduct) []string {
    out := make([]string, 0, len(in))
    for _, p := range in { out = append(out, p.Name) }
    return out
}

func TestApply_NoBounds_ReturnsAllInOrder(t *testing.T) {
    in := []PricedProduct{priced("a", 100, 1), priced("b", 200, 2), priced("c", 300, 3)}
    out := Criteria{}.Apply(in)
    if len(out) != 3 {
        t.Fatalf("want 3, got %d", len(out))
    }
    for i := range in {
        if out[i].Name != in[i].Name {
            t.Fatalf("order broken at %d: %v", i, names(out))
        }
    }
}

func TestApply_InclusiveBounds(t *testing.T) {
    in := []PricedProduct{priced("a", 100, 1), priced("b", 200, 2), priced("c", 300, 3)}

    cases := []struct {
        name string
        c    Criteria
        want []string
    }{
        {"min price inclusive", Criteria{MinPrice: f(200)}, []string{"b", "c"}},
        {"max price inclusive", Criteria{MaxPrice: f(200)}, []string{"a", "b"}},
        {"min rating inclusive", Criteria{MinRating: f(2)}, []string{"b", "c"}},
        {"max rating inclusive", Criteria{MaxRating: f(2)}, []string{"a", "b"}},
        {"bounds compose by AND", Criteria{MinPrice: f(150), MaxRating: f(2)}, []string{"b"}},
        {"all four bounds", Criteria{MinPrice: f(100), MaxPrice: f(300), MinRating: f(2), MaxRating: f(2)}, []string{"b"}},
        {"empty result", Criteria{MinPrice: f(301)}, []string{}},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got := names(tc.c.Apply(in))
            if len(got) != len(tc.want) {
                t.Fatalf("want %v, got %v", tc.want, got)
            }
            for i := range tc.want {
                if got[i] != tc.want[i] {
                    t.Fatalf("want %v, got %v", tc.want, got)
                }
            }
        })
    }
}

func TestApply_DoesNotModifyInput(t *testing.T) {
    in := []PricedProduct{priced("a", 100, 1), priced("b", 200, 2)}
    _ = Criteria{MinPrice: f(150)}.Apply(in)
    if in[0].Name != "a" || in[1].Name != "b" {
        t.Fatalf("input modified: %v", names(in))
    }
}

func TestApply_ScenarioAroundComputedPrice(t *testing.T) {
    // A 0.62-popularity, 5-gram product at $85/gram prices at 688.50.
    in := []PricedProduct{priced("ring", 688.5, 3.1)}

    if out := (Criteria{MinPrice: f(700)}).Apply(in); len(out) != 0 {
        t.Fatalf("minPrice=700 should exclude, got %v", names(out))
    }
    if out := (Criteria{MinPrice: f(600)}).Apply(in); len(out) != 1 {
        t.Fatalf("minPrice=600 should include, got %v", names(out))
    }
}

func TestParseCriteria_AbsentAndPresentBounds(t *testing.T) {
    q := url.Values{}
    q.Set("minPrice", "100.5")
    q.Set("maxRating", "4")

    c, err := ParseCriteria(q)
    if err != nil { t.Fatalf("parse: %v", err) }
    if c.MinPrice == nil || *c.MinPrice != 100.5 {
        t.Fatalf("minPrice: %+v", c.MinPrice)
    }
    if c.MaxRating == nil || *c.MaxRating != 4 {
        t.Fatalf("maxRating: %+v", c.MaxRating)
    }
    if c.MaxPrice != nil || c.MinRating != nil {
        t.Fatalf("absent bounds should be nil: %+v", c)
    }
}

func TestParseCriteria_EmptyValueIsAbsent(t *testing.T) {
    q := url.Values{}
    q.Set("minPrice", "")
    q.Set("maxPrice", "  ")
    c, err := ParseCriteria(q)
    if err != nil { t.Fatalf("parse: %v", err) }
    if c.MinPrice != nil || c.MaxPrice != nil {
        t.Fatalf("empty bounds should be nil: %+v", c)
    }
}

func TestParseCriteria_RejectsNonNumeric(t *testing.T) {
    for _, bad := range []string{"abc", "12x", "NaN", "+Inf"} {
        q := url.Values{}
        q.Set("minRating", bad)
        if _, err := ParseCriteria(q); err == nil {
            t.Fatalf("expected error for minRating=%q", bad)
        }
    }
}
