package goldprice

import (
    "context"
    "errors"
    "testing"
    "time"
)

type stubFetcher struct {
    price float64
    err   error
}

func (s stubFetcher) PriceGram24k(_ context.Context) (float64, error) {
    return s.price, s.err
}

func TestCurrent_NoCredential_UsesFallback(t *testing.T) {
    src := NewFallbackSource(FallbackConfig{}, nil)
    q := src.Current(context.Background())
    if q.PricePerGram != 85.0 || !q.Fallback || q.Source != FallbackName {
        t.Fatalf("unexpected quote: %+v", q)
    }
}

func TestCurrent_FetchError_UsesFallback(t *testing.T) {
    src := NewFallbackSource(FallbackConfig{}, stubFetcher{err: errors.New("boom")})
    q := src.Current(context.Background())
    if q.PricePerGram != 85.0 || !q.Fallback {
        t.Fatalf("unexpected quote: %+v", q)
    }
}

func TestCurrent_OutOfBand_UsesFallback(t *testing.T) {
    for _, price := range []float64{999, 49.99, 150.01, 0} {
        src := NewFallbackSource(FallbackConfig{}, stubFetcher{price: price})
        q := src.Current(context.Background())
        if q.PricePerGram != 85.0 || !q.Fallback {
            t.Fatalf("price %v: expected fallback, got %+v", price, q)
        }
    }
}

func TestCurrent_LivePricePassesThrough(t *testing.T) {
    for _, price := range []float64{50, 92.41, 150} {
        src := NewFallbackSource(FallbackConfig{}, stubFetcher{price: price})
        q := src.Current(context.Background())
        if q.PricePerGram != price || q.Fallback || q.Source != "goldapi.io" {
            t.Fatalf("price %v: unexpected quote %+v", price, q)
        }
        if q.FetchedAt.IsZero() {
            t.Fatalf("price %v: missing FetchedAt", price)
        }
    }
}

func TestCurrent_CustomFallbackConfig(t *testing.T) {
    cfg := FallbackConfig{
        SourceName:    "test-source",
        FallbackPrice: 70,
        MinPlausible:  60,
        MaxPlausible:  80,
        Timeout:       time.Second,
    }
    // 92.41 is fine for the default band but outside the custom one.
    q := NewFallbackSource(cfg, stubFetcher{price: 92.41}).Current(context.Background())
    if q.PricePerGram != 70 || !q.Fallback {
        t.Fatalf("unexpected quote: %+v", q)
    }
    q = NewFallbackSource(cfg, stubFetcher{price: 75}).Current(context.Background())
    if q.PricePerGram != 75 || q.Fallback || q.Source != "test-source" {
        t.Fatalf("unexpected quote: %+v", q)
    }
}
