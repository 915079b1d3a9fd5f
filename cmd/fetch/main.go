package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "net/url"
    "os"
    "time"

    "goldcatalog/internal/catalog"
    "goldcatalog/internal/config"
    "goldcatalog/internal/goldprice"
    "goldcatalog/internal/httpx"
    "goldcatalog/internal/pricing"
)

func main() {
    var configPath string
    var productsPath string
    var minPrice, maxPrice, minRating, maxRating string
    var timeout int

    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.StringVar(&productsPath, "products", getenv("PRODUCTS_FILE", ""), "path to products.json (overrides config)")
    flag.StringVar(&minPrice, "min-price", "", "inclusive lower price bound (USD)")
    flag.StringVar(&maxPrice, "max-price", "", "inclusive upper price bound (USD)")
    flag.StringVar(&minRating, "min-rating", "", "inclusive lower rating bound [0,5]")
    flag.StringVar(&maxRating, "max-rating", "", "inclusive upper rating bound [0,5]")
    flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if productsPath != "" { cfg.Catalog.Path = productsPath }
    if timeout != 0 { cfg.Server.RequestTimeoutSec = timeout }

    products, err := catalog.Load(cfg.Catalog.Path)
    if err != nil { log.Fatalf("catalog: %v", err) }

    q := url.Values{}
    if minPrice != "" { q.Set("minPrice", minPrice) }
    if maxPrice != "" { q.Set("maxPrice", maxPrice) }
    if minRating != "" { q.Set("minRating", minRating) }
    if maxRating != "" { q.Set("maxRating", maxRating) }
    criteria, err := pricing.ParseCriteria(q)
    if err != nil { log.Fatalf("filter: %v", err) }

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)

    var fetcher goldprice.Fetcher
    if cfg.GoldAPI.APIKey != "" {
        client, err := goldprice.NewGoldAPIClient(cfg.GoldAPI.APIKey,
            goldprice.WithHTTPClient(httpClient),
            goldprice.WithBaseURL(cfg.GoldAPI.Endpoint),
        )
        if err != nil { log.Fatalf("goldapi client: %v", err) }
        fetcher = client
    } else {
        log.Println("GOLD_API_KEY not set; pricing with the fallback gold price")
    }
    src := goldprice.NewFallbackSource(goldprice.FallbackConfig{
        FallbackPrice: cfg.GoldAPI.FallbackPrice,
        MinPlausible:  cfg.GoldAPI.MinPlausible,
        MaxPlausible:  cfg.GoldAPI.MaxPlausible,
        Timeout:       time.Duration(cfg.GoldAPI.TimeoutMs) * time.Millisecond,
    }, fetcher)

    ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
    defer cancel()

    quote := src.Current(ctx)
    priced := criteria.Apply(pricing.PriceAll(products, quote))
    log.Printf("%d of %d products match", len(priced), len(products))

    out := struct {
        Quote    goldprice.Quote         `json:"quote"`
        Products []pricing.PricedProduct `json:"products"`
    }{Quote: quote, Products: priced}
    b, _ := json.MarshalIndent(out, "", "  ")
    fmt.Println(string(b))
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        var x int
        _, _ = fmt.Sscanf(v, "%d", &x)
        if x != 0 { return x }
    }
    return def
}
