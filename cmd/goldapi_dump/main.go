package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log"
    "net/http"
    "os"
    "time"

    "goldcatalog/internal/config"
)

// Debug tool: hit the upstream quote endpoint with the configured
// credential and print the raw payload plus the parsed per-gram price,
// for diagnosing credential and plausibility issues.
func main() {
    var (
        cfgPath    string
        outPath    string
        timeoutSec int
    )
    flag.StringVar(&cfgPath, "config", "", "path to config.json (optional)")
    flag.StringVar(&outPath, "out", "", "write raw payload to this file instead of stdout")
    flag.IntVar(&timeoutSec, "timeout", 10, "HTTP timeout seconds")
    flag.Parse()

    cfg, err := config.Load(cfgPath)
    if err != nil {
        log.Fatalf("config: %v", err)
    }
    if cfg.GoldAPI.APIKey == "" {
        log.Fatal("GOLD_API_KEY missing (set in config.json, .env or env)")
    }

    hc := &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}
    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
    defer cancel()

    url := cfg.GoldAPI.Endpoint + "/api/XAU/USD"
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
    if err != nil {
        log.Fatalf("request: %v", err)
    }
    req.Header.Set("x-access-token", cfg.GoldAPI.APIKey)
    req.Header.Set("Accept", "application/json")

    resp, err := hc.Do(req)
    if err != nil {
        log.Fatalf("GET %s: %v", url, err)
    }
    defer resp.Body.Close()

    body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
    if err != nil {
        log.Fatalf("read body: %v", err)
    }
    log.Printf("GET %s -> %d (%d bytes)", url, resp.StatusCode, len(body))

    if outPath != "" {
        if err := os.WriteFile(outPath, body, 0o644); err != nil {
            log.Fatalf("write out: %v", err)
        }
        log.Printf("raw payload written to %s", outPath)
    } else {
        fmt.Println(string(body))
    }

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        os.Exit(1)
    }

    var parsed struct {
        PriceGram24k *float64 `json:"price_gram_24k"`
    }
    if err := json.Unmarshal(body, &parsed); err != nil {
        log.Fatalf("parse payload: %v", err)
    }
    if parsed.PriceGram24k == nil {
        log.Fatal("payload has no price_gram_24k field")
    }

    price := *parsed.PriceGram24k
    inBand := price >= cfg.GoldAPI.MinPlausible && price <= cfg.GoldAPI.MaxPlausible
    log.Printf("price_gram_24k=$%.2f/gram in_band=%v (accepted band [%g, %g], fallback $%.2f)",
        price, inBand, cfg.GoldAPI.MinPlausible, cfg.GoldAPI.MaxPlausible, cfg.GoldAPI.FallbackPrice)
}
