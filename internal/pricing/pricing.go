package pricing

import (
    "github.com/shopspring/decimal"

    "goldcatalog/internal/catalog"
    "goldcatalog/internal/goldprice"
)

// PricedProduct is a catalog Product augmented with fields derived from
// the gold price at request time. Derived fresh per request, never
// persisted.
type PricedProduct struct {
    catalog.Product
    Price          float64 `json:"price"`
    PriceFormatted string  `json:"priceFormatted"`
    Rating         float64 `json:"rating"`
    GoldPriceUsed  float64 `json:"goldPriceUsed"`
}

// Price computes the raw product price in USD:
// (popularityScore + 1) * weight * goldPrice.
func Price(popularityScore, weight, goldPrice float64) float64 {
    return (popularityScore + 1) * weight * goldPrice
}

// FormatPrice renders a price with exactly two decimal digits,
// rounding half away from zero, e.g. "$688.50 USD".
func FormatPrice(price float64) string {
    return "$" + decimal.NewFromFloat(price).StringFixed(2) + " USD"
}

// Rating converts a popularity score in [0,1] to a star rating in
// [0,5], rounded to one decimal digit.
func Rating(popularityScore float64) float64 {
    r, _ := decimal.NewFromFloat(popularityScore * 5).Round(1).Float64()
    return r
}

// PriceOf derives one PricedProduct. The numeric Price carries the
// rounded two-decimal value so that it always matches PriceFormatted.
func PriceOf(p catalog.Product, goldPrice float64) PricedProduct {
    d := decimal.NewFromFloat(Price(p.PopularityScore, p.Weight, goldPrice)).Round(2)
    price, _ := d.Float64()
    return PricedProduct{
        Product:        p,
        Price:          price,
        PriceFormatted: "$" + d.StringFixed(2) + " USD",
        Rating:         Rating(p.PopularityScore),
        GoldPriceUsed:  goldPrice,
    }
}

// PriceAll prices every catalog product with a single quote.
func PriceAll(products []catalog.Product, quote goldprice.Quote) []PricedProduct {
    out := make([]PricedProduct, 0, len(products))
    for _, p := range products {
        out = append(out, PriceOf(p, quote.PricePerGram))
    }
    return out
}
