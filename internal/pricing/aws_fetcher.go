package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	awspricing "github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"golang.org/x/time/rate"
)

const (
	hoursPerMonth = 24.0 * 30.0

	// The Pricing API only lives in us-east-1 and ap-south-1.
	pricingAPIRegion = "us-east-1"

	maxPricePages = 5
)

var reMemoryGiB = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]+)?)\s*GiB`)

// AWSRefresher derives per-core and per-GB monthly rates from a sample of
// EC2 on-demand prices. Instance and storage rates are left at their
// configured values; only the CPU and memory components are refreshed.
type AWSRefresher struct {
	client  *awspricing.Client
	limiter *rate.Limiter
	table   *Table
	region  string
}

// NewAWSRefresher creates a refresher for the given target region.
func NewAWSRefresher(ctx context.Context, region string, table *Table) (*AWSRefresher, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(pricingAPIRegion))
	if err != nil {
		return nil, fmt.Errorf("aws config load: %w", err)
	}

	return &AWSRefresher{
		client:  awspricing.NewFromConfig(cfg),
		limiter: rate.NewLimiter(8, 16),
		table:   table,
		region:  region,
	}, nil
}

// Refresh fetches a page-limited sample of EC2 on-demand prices and swaps
// the derived CPU/memory rates into the table. On any failure the previous
// rates stay in effect.
func (r *AWSRefresher) Refresh(ctx context.Context) error {
	var perCore, perGiB []float64

	input := &awspricing.GetProductsInput{
		ServiceCode: aws.String("AmazonEC2"),
		Filters: []types.Filter{
			filter("regionCode", r.region),
			filter("operatingSystem", "Linux"),
			filter("tenancy", "Shared"),
			filter("preInstalledSw", "NA"),
			filter("capacitystatus", "Used"),
		},
		MaxResults: aws.Int32(100),
	}

	for page := 0; page < maxPricePages; page++ {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}

		out, err := r.client.GetProducts(ctx, input)
		if err != nil {
			return fmt.Errorf("get products: %w", err)
		}

		for _, item := range out.PriceList {
			vcpu, memGiB, priceHour, ok := parsePriceItem(item)
			if !ok || vcpu == 0 || memGiB == 0 || priceHour == 0 {
				continue
			}
			monthly := priceHour * hoursPerMonth
			perCore = append(perCore, monthly/float64(vcpu))
			perGiB = append(perGiB, monthly/memGiB)
		}

		if out.NextToken == nil {
			break
		}
		input.NextToken = out.NextToken
	}

	if len(perCore) == 0 {
		return fmt.Errorf("no usable price rows for region %s", r.region)
	}

	current := r.table.Current()
	current.CPUCoreRate = median(perCore)
	current.MemoryGBRate = median(perGiB)
	r.table.Replace(current)

	log.Printf("Refreshed pricing from AWS (%d rows): cpu=%.2f/core/mo mem=%.2f/GB/mo",
		len(perCore), current.CPUCoreRate, current.MemoryGBRate)
	return nil
}

// parsePriceItem extracts vCPU count, memory and the on-demand hourly USD
// price from one Pricing API JSON document.
func parsePriceItem(raw string) (vcpu int, memGiB float64, priceHour float64, ok bool) {
	var doc struct {
		Product struct {
			Attributes struct {
				VCPU   string `json:"vcpu"`
				Memory string `json:"memory"`
			} `json:"attributes"`
		} `json:"product"`
		Terms struct {
			OnDemand map[string]struct {
				PriceDimensions map[string]struct {
					PricePerUnit struct {
						USD string `json:"USD"`
					} `json:"pricePerUnit"`
				} `json:"priceDimensions"`
			} `json:"OnDemand"`
		} `json:"terms"`
	}

	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return 0, 0, 0, false
	}

	vcpu, err := strconv.Atoi(doc.Product.Attributes.VCPU)
	if err != nil {
		return 0, 0, 0, false
	}

	m := reMemoryGiB.FindStringSubmatch(doc.Product.Attributes.Memory)
	if m == nil {
		return 0, 0, 0, false
	}
	memGiB, err = strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, 0, 0, false
	}

	for _, term := range doc.Terms.OnDemand {
		for _, dim := range term.PriceDimensions {
			p, err := strconv.ParseFloat(dim.PricePerUnit.USD, 64)
			if err == nil && p > 0 {
				return vcpu, memGiB, p, true
			}
		}
	}

	return 0, 0, 0, false
}

func filter(field, value string) types.Filter {
	return types.Filter{
		Type:  types.FilterTypeTermMatch,
		Field: aws.String(field),
		Value: aws.String(value),
	}
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
