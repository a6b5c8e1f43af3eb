// Package rates refreshes the cost model rate card from live AWS
// pricing. The defaults in costmodel stay untouched unless a fetch
// succeeds end to end.
package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/shopspring/decimal"

	"migration-cost/decision/costmodel"
	"migration-cost/pkg/units"
)

// pricingRegion hosts the AWS Pricing API itself, independent of the
// region being priced.
const pricingRegion = "us-east-1"

// referenceInstanceType anchors the per-core rate derivation. A general
// purpose shape keeps the derived rate representative.
const referenceInstanceType = "m5.large"

// Overrides is a fetched rate card fragment. Only the rates the Pricing
// API can anchor are overridden; markup stays configuration.
type Overrides struct {
	CostPerCore decimal.Decimal `json:"costPerCore"`
	CostPerGB   decimal.Decimal `json:"costPerGB"`
	Region      string          `json:"region"`
	FetchedAt   time.Time       `json:"fetchedAt"`
	Source      string          `json:"source"`
}

// Apply merges the overrides into a rate card.
func (o *Overrides) Apply(r costmodel.Rates) costmodel.Rates {
	r.CostPerCore = o.CostPerCore
	r.CostPerGB = o.CostPerGB
	return r
}

// Fetcher pulls on-demand pricing from the AWS Pricing API.
type Fetcher struct {
	client *pricing.Client
}

// NewFetcher builds a fetcher from the ambient AWS credential chain.
func NewFetcher(ctx context.Context) (*Fetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(pricingRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Fetcher{client: pricing.NewFromConfig(cfg)}, nil
}

// Fetch derives rate overrides for one region: the monthly per-core rate
// from the reference instance's hourly on-demand price, and the per-GB
// storage rate from gp3 volume pricing.
func (f *Fetcher) Fetch(ctx context.Context, region string) (*Overrides, error) {
	perCore, err := f.fetchPerCoreRate(ctx, region)
	if err != nil {
		return nil, err
	}

	perGB, err := f.fetchStorageRate(ctx, region)
	if err != nil {
		return nil, err
	}

	return &Overrides{
		CostPerCore: perCore,
		CostPerGB:   perGB,
		Region:      region,
		FetchedAt:   time.Now().UTC(),
		Source:      "aws-pricing-api",
	}, nil
}

func (f *Fetcher) fetchPerCoreRate(ctx context.Context, region string) (decimal.Decimal, error) {
	out, err := f.client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		MaxResults:  aws.Int32(10),
		Filters: []types.Filter{
			termMatch("instanceType", referenceInstanceType),
			termMatch("regionCode", region),
			termMatch("operatingSystem", "Linux"),
			termMatch("tenancy", "Shared"),
			termMatch("preInstalledSw", "NA"),
			termMatch("capacitystatus", "Used"),
		},
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch EC2 pricing: %w", err)
	}

	for _, doc := range out.PriceList {
		product, err := parsePriceDocument(doc)
		if err != nil {
			continue
		}
		vcpu := product.VCPUCount()
		if vcpu <= 0 || product.HourlyUSD.IsZero() {
			continue
		}
		perCoreHourly := product.HourlyUSD.Div(decimal.NewFromInt(vcpu))
		return perCoreHourly.Mul(decimal.NewFromInt(units.HoursPerMonth)), nil
	}

	return decimal.Zero, fmt.Errorf("no usable EC2 price for %s in %s", referenceInstanceType, region)
}

func (f *Fetcher) fetchStorageRate(ctx context.Context, region string) (decimal.Decimal, error) {
	out, err := f.client.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		MaxResults:  aws.Int32(10),
		Filters: []types.Filter{
			termMatch("productFamily", "Storage"),
			termMatch("volumeApiName", "gp3"),
			termMatch("regionCode", region),
		},
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch EBS pricing: %w", err)
	}

	for _, doc := range out.PriceList {
		product, err := parsePriceDocument(doc)
		if err != nil || product.HourlyUSD.IsZero() {
			continue
		}
		// Storage dimensions are already GB-month.
		return product.HourlyUSD, nil
	}

	return decimal.Zero, fmt.Errorf("no usable gp3 price in %s", region)
}

func termMatch(field, value string) types.Filter {
	return types.Filter{
		Field: aws.String(field),
		Type:  types.FilterTypeTermMatch,
		Value: aws.String(value),
	}
}
