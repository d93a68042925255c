package productsource

import (
	"fmt"
	"strconv"
	"strings"

	"giftguru-backend/internal/domain/recommendation"

	"github.com/goccy/go-json"
)

// ParseOutcome is the result of parsing one item of a search response:
// either Parsed or Skipped.
type ParseOutcome interface {
	parseOutcome()
}

// Parsed carries a usable product.
type Parsed struct {
	Product recommendation.ExternalProduct
}

// Skipped records why an item was dropped.
type Skipped struct {
	Reason string
}

func (Parsed) parseOutcome()  {}
func (Skipped) parseOutcome() {}

type displayValue struct {
	DisplayValue string `json:"DisplayValue"`
}

type imageRef struct {
	URL string `json:"URL"`
}

// rawItem mirrors the remote item shape. Every level is optional.
type rawItem struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      *struct {
		Title *displayValue `json:"Title"`
	} `json:"ItemInfo"`
	Offers *struct {
		Listings []struct {
			Price *struct {
				// minor currency units
				Amount   *float64 `json:"Amount"`
				Currency string   `json:"Currency"`
			} `json:"Price"`
		} `json:"Listings"`
	} `json:"Offers"`
	Images *struct {
		Primary *struct {
			Large  *imageRef `json:"Large"`
			Medium *imageRef `json:"Medium"`
		} `json:"Primary"`
	} `json:"Images"`
	CustomerReviews *struct {
		StarRating *struct {
			Value json.RawMessage `json:"Value"`
		} `json:"StarRating"`
		Count json.RawMessage `json:"Count"`
	} `json:"CustomerReviews"`
}

type searchResponse struct {
	SearchResult *struct {
		Items []json.RawMessage `json:"Items"`
	} `json:"SearchResult"`
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
}

// ParseItem converts one raw item. Missing identifier, title or price make the
// item unusable; every other field falls back to a zero value.
func ParseItem(data []byte) ParseOutcome {
	var raw rawItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return Skipped{Reason: fmt.Sprintf("malformed item: %v", err)}
	}

	id := strings.TrimSpace(raw.ASIN)
	if id == "" {
		return Skipped{Reason: "missing ASIN"}
	}

	title := ""
	if raw.ItemInfo != nil && raw.ItemInfo.Title != nil {
		title = strings.TrimSpace(raw.ItemInfo.Title.DisplayValue)
	}
	if title == "" {
		return Skipped{Reason: fmt.Sprintf("item %s: missing title", id)}
	}

	if raw.Offers == nil || len(raw.Offers.Listings) == 0 ||
		raw.Offers.Listings[0].Price == nil || raw.Offers.Listings[0].Price.Amount == nil {
		return Skipped{Reason: fmt.Sprintf("item %s: missing price", id)}
	}
	price := raw.Offers.Listings[0].Price
	if *price.Amount < 0 {
		return Skipped{Reason: fmt.Sprintf("item %s: negative price", id)}
	}

	product := recommendation.ExternalProduct{
		ID:       id,
		Title:    title,
		Price:    *price.Amount / 100,
		Currency: price.Currency,
		Link:     raw.DetailPageURL,
	}
	if product.Currency == "" {
		product.Currency = "USD"
	}

	if raw.Images != nil && raw.Images.Primary != nil {
		switch {
		case raw.Images.Primary.Large != nil:
			product.ImageURL = raw.Images.Primary.Large.URL
		case raw.Images.Primary.Medium != nil:
			product.ImageURL = raw.Images.Primary.Medium.URL
		}
	}

	if reviews := raw.CustomerReviews; reviews != nil {
		if reviews.StarRating != nil {
			product.Rating = parseRating(reviews.StarRating.Value)
		}
		product.ReviewCount = parseCount(reviews.Count)
	}

	return Parsed{Product: product}
}

// parseRating accepts 4.5, "4.5" or "4.5 out of 5".
func parseRating(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCount accepts 120 or {"Value": 120}.
func parseCount(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var wrapped struct {
		Value int `json:"Value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Value
	}
	return 0
}

// ParseSearchResponse decodes a full response body. A body that is not JSON
// is an error; individual bad items are reported as Skipped outcomes.
func ParseSearchResponse(body []byte) ([]ParseOutcome, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("search failed: %s: %s", resp.Errors[0].Code, resp.Errors[0].Message)
	}
	if resp.SearchResult == nil {
		return []ParseOutcome{}, nil
	}

	out := make([]ParseOutcome, 0, len(resp.SearchResult.Items))
	for _, item := range resp.SearchResult.Items {
		out = append(out, ParseItem(item))
	}
	return out, nil
}

// Partition splits outcomes into products and skip reasons.
func Partition(outcomes []ParseOutcome) ([]recommendation.ExternalProduct, []string) {
	products := make([]recommendation.ExternalProduct, 0, len(outcomes))
	var skipped []string
	for _, o := range outcomes {
		switch v := o.(type) {
		case Parsed:
			products = append(products, v.Product)
		case Skipped:
			skipped = append(skipped, v.Reason)
		}
	}
	return products, skipped
}
