package rates

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// priceDocument is the subset of an AWS Pricing API price-list document
// the fetcher needs: product attributes plus the first on-demand USD
// rate dimension.
type priceDocument struct {
	Attributes map[string]string
	HourlyUSD  decimal.Decimal
	Unit       string
}

// VCPUCount reads the vcpu product attribute; 0 when absent.
func (p *priceDocument) VCPUCount() int64 {
	raw, ok := p.Attributes["vcpu"]
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// rawPriceList mirrors the nested price-list JSON shape. Term and
// dimension keys are opaque SKU-derived strings, hence the maps.
type rawPriceList struct {
	Product struct {
		Attributes map[string]string `json:"attributes"`
	} `json:"product"`
	Terms struct {
		OnDemand map[string]struct {
			PriceDimensions map[string]struct {
				Unit         string            `json:"unit"`
				PricePerUnit map[string]string `json:"pricePerUnit"`
			} `json:"priceDimensions"`
		} `json:"OnDemand"`
	} `json:"terms"`
}

// parsePriceDocument extracts the first on-demand USD price dimension
// from one price-list document.
func parsePriceDocument(doc string) (*priceDocument, error) {
	var raw rawPriceList
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode price document: %w", err)
	}

	parsed := &priceDocument{Attributes: raw.Product.Attributes}

	for _, term := range raw.Terms.OnDemand {
		for _, dim := range term.PriceDimensions {
			usd, ok := dim.PricePerUnit["USD"]
			if !ok {
				continue
			}
			price, err := decimal.NewFromString(usd)
			if err != nil || price.IsZero() {
				continue
			}
			parsed.HourlyUSD = price
			parsed.Unit = dim.Unit
			return parsed, nil
		}
	}

	return parsed, nil
}
