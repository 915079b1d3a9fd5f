package goldprice

import (
    "context"
    "log"
    "time"
)

// FallbackName is the Quote.Source value used when the live price
// could not be obtained.
const FallbackName = "fallback"

// Fetcher is the narrow upstream contract the fallback wrapper needs.
type Fetcher interface {
    PriceGram24k(ctx context.Context) (float64, error)
}

// FallbackConfig controls the degradation behavior of FallbackSource.
type FallbackConfig struct {
    SourceName    string        // reported on live quotes, default "goldapi.io"
    FallbackPrice float64       // substituted on any failure, default 85.0
    MinPlausible  float64       // accepted band lower bound, default 50
    MaxPlausible  float64       // accepted band upper bound, default 150
    Timeout       time.Duration // per-fetch bound, default 5s
}

// FallbackSource wraps a Fetcher and absorbs every failure mode into a
// fixed fallback price: missing credential, transport errors, upstream
// errors, and values outside the plausibility band. Current never
// fails; the Fallback flag on the returned Quote records which path
// was taken.
type FallbackSource struct {
    cfg     FallbackConfig
    fetcher Fetcher
}

// NewFallbackSource builds a FallbackSource. A nil fetcher means no
// credential is configured; every Current call then returns the
// fallback quote immediately without touching the network.
func NewFallbackSource(cfg FallbackConfig, f Fetcher) *FallbackSource {
    if cfg.SourceName == "" { cfg.SourceName = "goldapi.io" }
    if cfg.FallbackPrice <= 0 { cfg.FallbackPrice = 85.0 }
    if cfg.MinPlausible <= 0 { cfg.MinPlausible = 50 }
    if cfg.MaxPlausible <= 0 { cfg.MaxPlausible = 150 }
    if cfg.Timeout <= 0 { cfg.Timeout = 5 * time.Second }
    return &FallbackSource{cfg: cfg, fetcher: f}
}

func (s *FallbackSource) Current(ctx context.Context) Quote {
    if s.fetcher == nil {
        log.Printf("goldprice: no credential configured, using fallback $%.2f/gram", s.cfg.FallbackPrice)
        return s.fallbackQuote()
    }

    ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
    defer cancel()

    price, err := s.fetcher.PriceGram24k(ctx)
    if err != nil {
        log.Printf("goldprice: fetch failed (%v), using fallback $%.2f/gram", err, s.cfg.FallbackPrice)
        return s.fallbackQuote()
    }
    if price < s.cfg.MinPlausible || price > s.cfg.MaxPlausible {
        log.Printf("goldprice: implausible price $%.2f/gram outside [%g, %g], using fallback $%.2f/gram",
            price, s.cfg.MinPlausible, s.cfg.MaxPlausible, s.cfg.FallbackPrice)
        return s.fallbackQuote()
    }

    log.Printf("goldprice: live price $%.2f/gram from %s", price, s.cfg.SourceName)
    return Quote{
        PricePerGram: price,
        Source:       s.cfg.SourceName,
        FetchedAt:    time.Now().UTC(),
    }
}

func (s *FallbackSource) fallbackQuote() Quote {
    return Quote{
        PricePerGram: s.cfg.FallbackPrice,
        Source:       FallbackName,
        Fallback:     true,
        FetchedAt:    time.Now().UTC(),
    }
}
