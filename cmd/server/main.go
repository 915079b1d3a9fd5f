package main

import (
    "compress/gzip"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "github.com/google/uuid"

    "goldcatalog/internal/catalog"
    "goldcatalog/internal/config"
    "goldcatalog/internal/goldprice"
    "goldcatalog/internal/httpx"
    "goldcatalog/internal/pricing"
)

const version = "1.0.0"

type productsResponse struct {
    Success         bool                    `json:"success"`
    Count           int                     `json:"count"`
    GoldPrice       float64                 `json:"goldPrice"`
    GoldPriceSource string                  `json:"goldPriceSource"`
    Timestamp       string                  `json:"timestamp"`
    Products        []pricing.PricedProduct `json:"products"`
}

type filterResponse struct {
    Success         bool                    `json:"success"`
    Count           int                     `json:"count"`
    Filters         pricing.Criteria        `json:"filters"`
    GoldPrice       float64                 `json:"goldPrice"`
    GoldPriceSource string                  `json:"goldPriceSource"`
    Timestamp       string                  `json:"timestamp"`
    Products        []pricing.PricedProduct `json:"products"`
}

type goldPriceResponse struct {
    Success            bool    `json:"success"`
    GoldPrice          float64 `json:"goldPrice"`
    GoldPriceFormatted string  `json:"goldPriceFormatted"`
    Unit               string  `json:"unit"`
    Timestamp          string  `json:"timestamp"`
    Source             string  `json:"source"`
}

type indexEndpoint struct {
    URL          string `json:"url"`
    Method       string `json:"method"`
    Description  string `json:"description"`
    ExampleUsage string `json:"exampleUsage,omitempty"`
}

type indexEndpoints struct {
    Products         indexEndpoint `json:"products"`
    FilteredProducts indexEndpoint `json:"filteredProducts"`
    GoldPrice        indexEndpoint `json:"goldPrice"`
}

type indexResponse struct {
    Success   bool           `json:"success"`
    Message   string         `json:"message"`
    Version   string         `json:"version"`
    Endpoints indexEndpoints `json:"endpoints"`
    Timestamp string         `json:"timestamp"`
}

type directoryEntry struct {
    Method      string `json:"method"`
    Path        string `json:"path"`
    Description string `json:"description"`
}

type notFoundResponse struct {
    Success            bool             `json:"success"`
    Message            string           `json:"message"`
    AvailableEndpoints []directoryEntry `json:"availableEndpoints"`
}

type errorResponse struct {
    Success bool   `json:"success"`
    Message string `json:"message"`
    Error   string `json:"error,omitempty"`
}

func main() {
    // Config
    cfgPath := os.Getenv("CONFIG_FILE")
    cfg, err := config.Load(cfgPath)
    if err != nil { log.Fatalf("config: %v", err) }
    port := cfg.Server.Port

    // Catalog is loaded once before serving; a corrupt catalog is fatal.
    products, err := catalog.Load(cfg.Catalog.Path)
    if err != nil { log.Fatalf("catalog: %v", err) }
    log.Printf("catalog: %d products loaded from %s", len(products), cfg.Catalog.Path)

    httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
    httpClient.UserAgent = "gold-catalog/1.0"

    var fetcher goldprice.Fetcher
    if cfg.GoldAPI.APIKey == "" {
        log.Println("warning: GOLD_API_KEY not set; every request will use the fallback gold price")
    } else {
        client, err := goldprice.NewGoldAPIClient(cfg.GoldAPI.APIKey,
            goldprice.WithHTTPClient(httpClient),
            goldprice.WithBaseURL(cfg.GoldAPI.Endpoint),
        )
        if err != nil {
            log.Printf("goldapi client error: %v; falling back", err)
        } else {
            fetcher = client
        }
    }
    src := goldprice.NewFallbackSource(goldprice.FallbackConfig{
        FallbackPrice: cfg.GoldAPI.FallbackPrice,
        MinPlausible:  cfg.GoldAPI.MinPlausible,
        MaxPlausible:  cfg.GoldAPI.MaxPlausible,
        Timeout:       time.Duration(cfg.GoldAPI.TimeoutMs) * time.Millisecond,
    }, fetcher)

    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           newRouter(products, src),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Printf("server listening on :%s", port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

// newRouter builds the routing table and the middleware chain around an
// injected catalog and quote source. Only GET is routed; any other method
// falls through to the endpoint directory, same as an unmatched path.
func newRouter(products []catalog.Product, src goldprice.Source) http.Handler {
    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            handleNotFound(w, r)
            return
        }
        handleProducts(w, r, products, src)
    })
    mux.HandleFunc("/api/products/filter", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            handleNotFound(w, r)
            return
        }
        handleFilter(w, r, products, src)
    })
    mux.HandleFunc("/api/gold-price", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            handleNotFound(w, r)
            return
        }
        handleGoldPrice(w, r, src)
    })
    mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/" || r.Method != http.MethodGet {
            handleNotFound(w, r)
            return
        }
        handleIndex(w, r)
    })
    return withJSONHeaders(withGzip(withRequestLog(recoverPanic(mux))))
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
    writeJSON(w, http.StatusOK, indexResponse{
        Success: true,
        Message: "API is up",
        Version: version,
        Endpoints: indexEndpoints{
            Products: indexEndpoint{
                URL:         "/api/products",
                Method:      http.MethodGet,
                Description: "All products with computed prices",
            },
            FilteredProducts: indexEndpoint{
                URL:          "/api/products/filter",
                Method:       http.MethodGet,
                Description:  "Products filtered by price and rating bounds",
                ExampleUsage: "/api/products/filter?minPrice=100&maxPrice=500",
            },
            GoldPrice: indexEndpoint{
                URL:         "/api/gold-price",
                Method:      http.MethodGet,
                Description: "Current gold price",
            },
        },
        Timestamp: nowISO(),
    })
}

// handleProducts obtains one fresh quote and prices the whole catalog.
func handleProducts(w http.ResponseWriter, r *http.Request, products []catalog.Product, src goldprice.Source) {
    quote := src.Current(r.Context())
    priced := pricing.PriceAll(products, quote)
    writeJSON(w, http.StatusOK, productsResponse{
        Success:         true,
        Count:           len(priced),
        GoldPrice:       quote.PricePerGram,
        GoldPriceSource: quote.Source,
        Timestamp:       nowISO(),
        Products:        priced,
    })
}

func handleFilter(w http.ResponseWriter, r *http.Request, products []catalog.Product, src goldprice.Source) {
    criteria, err := pricing.ParseCriteria(r.URL.Query())
    if err != nil {
        writeJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid filter parameters", Error: err.Error()})
        return
    }
    quote := src.Current(r.Context())
    priced := criteria.Apply(pricing.PriceAll(products, quote))
    writeJSON(w, http.StatusOK, filterResponse{
        Success:         true,
        Count:           len(priced),
        Filters:         criteria,
        GoldPrice:       quote.PricePerGram,
        GoldPriceSource: quote.Source,
        Timestamp:       nowISO(),
        Products:        priced,
    })
}

func handleGoldPrice(w http.ResponseWriter, r *http.Request, src goldprice.Source) {
    quote := src.Current(r.Context())
    writeJSON(w, http.StatusOK, goldPriceResponse{
        Success:            true,
        GoldPrice:          quote.PricePerGram,
        GoldPriceFormatted: fmt.Sprintf("$%.2f/gram", quote.PricePerGram),
        Unit:               "USD/gram",
        Timestamp:          nowISO(),
        Source:             quote.Source,
    })
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusNotFound, notFoundResponse{
        Message: fmt.Sprintf("endpoint not found: %s %s", r.Method, r.URL.Path),
        AvailableEndpoints: []directoryEntry{
            {Method: http.MethodGet, Path: "/", Description: "API info"},
            {Method: http.MethodGet, Path: "/api/products", Description: "All products"},
            {Method: http.MethodGet, Path: "/api/products/filter", Description: "Filtered products"},
            {Method: http.MethodGet, Path: "/api/gold-price", Description: "Current gold price"},
        },
    })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }

func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        // Basic CORS for browser usage; adjust as needed.
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip compresses response when client supports gzip.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        // Prefer best speed to reduce CPU usage since payloads are JSON
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        gw := gzipResponseWriter{ResponseWriter: w, Writer: gz}
        next.ServeHTTP(gw, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// withRequestLog tags every request with an id and logs its outcome.
func withRequestLog(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := r.Header.Get("X-Request-ID")
        if id == "" { id = uuid.NewString() }
        w.Header().Set("X-Request-ID", id)
        start := time.Now()
        next.ServeHTTP(w, r)
        log.Printf("%s %s id=%s took=%s", r.Method, r.URL.Path, id, time.Since(start))
    })
}

// recoverPanic converts handler panics to the JSON 500 error shape.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
                writeJSON(w, http.StatusInternalServerError, errorResponse{
                    Message: "internal server error",
                    Error:   fmt.Sprint(rec),
                })
            }
        }()
        next.ServeHTTP(w, r)
    })
}
