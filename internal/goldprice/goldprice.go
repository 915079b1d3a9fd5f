package goldprice

import (
    "context"
    "time"
)

// Quote is a single USD-per-gram gold price. It is obtained fresh for the
// request that needs it and is never cached or shared across requests.
// Fallback reports whether the live source could not be used and the
// configured fallback price was substituted instead.
type Quote struct {
    PricePerGram float64   `json:"price_per_gram"`
    Source       string    `json:"source"`
    Fallback     bool      `json:"fallback"`
    FetchedAt    time.Time `json:"fetched_at"`
}

// Source yields the current gold price. Implementations never fail
// outward: every failure mode degrades to a fallback Quote.
type Source interface {
    Current(ctx context.Context) Quote
}
