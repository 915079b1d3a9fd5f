package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"

    "github.com/joho/godotenv"
)

type Server struct {
    Port              string `json:"port"`
    RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type GoldAPI struct {
    APIKey        string  `json:"api_key"`
    Endpoint      string  `json:"endpoint"`
    TimeoutMs     int     `json:"timeout_ms"`
    FallbackPrice float64 `json:"fallback_price"`
    MinPlausible  float64 `json:"min_plausible"`
    MaxPlausible  float64 `json:"max_plausible"`
}

type Catalog struct {
    Path string `json:"path"`
}

type Config struct {
    Server  Server  `json:"server"`
    GoldAPI GoldAPI `json:"goldapi"`
    Catalog Catalog `json:"catalog"`
}

func Default() Config {
    return Config{
        Server: Server{Port: "5000", RequestTimeoutSec: 15},
        GoldAPI: GoldAPI{
            Endpoint:      "https://www.goldapi.io",
            TimeoutMs:     5000,
            FallbackPrice: 85.0,
            MinPlausible:  50,
            MaxPlausible:  150,
        },
        Catalog: Catalog{Path: "products.json"},
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. A .env file (if present) and environment variables
// override select fields for secrecy.
func Load(path string) (Config, error) {
    _ = godotenv.Load()

    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("PORT"); v != "" { cfg.Server.Port = v }
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Server.RequestTimeoutSec = x }
    }
    if v := os.Getenv("GOLD_API_KEY"); v != "" { cfg.GoldAPI.APIKey = v }
    if v := os.Getenv("GOLDAPI_ENDPOINT"); v != "" { cfg.GoldAPI.Endpoint = v }
    if v := os.Getenv("GOLDAPI_TIMEOUT_MS"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.GoldAPI.TimeoutMs = x }
    }
    if v := os.Getenv("GOLDAPI_FALLBACK_PRICE"); v != "" {
        var x float64; fmt.Sscanf(v, "%g", &x); if x > 0 { cfg.GoldAPI.FallbackPrice = x }
    }
    if v := os.Getenv("PRODUCTS_FILE"); v != "" { cfg.Catalog.Path = v }
}
