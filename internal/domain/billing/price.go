package billing

import (
	"github.com/shopspring/decimal"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// Price is one purchasable catalog entry, flattened from whatever shape the
// catalog endpoint produced. Amounts are minor currency units.
type Price struct {
	ID                 string
	RecurringInterval  string // "" means a one-time purchase
	UnitAmount         decimal.Decimal
	HasAmount          bool
	Currency           string
	ProductName        string
	ProductDescription string
	Metadata           types.Metadata
}

// IsRecurring reports whether the price is subscription-eligible
func (p *Price) IsRecurring() bool {
	return p.RecurringInterval != ""
}

var (
	priceIDKeys     = []string{"_id", "id", "priceId", "price_id"}
	amountKeys      = []string{"unitAmount", "unit_amount", "amount", "price", "unitPrice", "unit_price", "cost"}
	currencyKeys    = []string{"currency", "currencyCode", "currency_code"}
	intervalKeys    = []string{"recurring.interval", "interval", "billingPeriod", "billing_period", "period"}
	productNameKeys = []string{"name", "productName", "product_name", "title"}
	productDescKeys = []string{"description", "desc"}
	metadataKeys    = []string{"metadata", "meta"}

	catalogListKeys  = []string{"data", "prices", "items", "products", "results"}
	nestedPricesKeys = []string{"prices", "plans", "tiers"}
)

// NormalizeCatalog converts a raw catalog payload into flat price records.
// The payload may be a bare array of prices, an array nested under an
// envelope key, a single object, or an array of products each carrying a
// nested prices array; product-level name, description and metadata are
// attached to every flattened price.
func NormalizeCatalog(payload any) []*Price {
	records := types.AsRecords(payload)
	if rec, ok := types.AsRecord(payload); ok {
		for _, key := range catalogListKeys {
			if nested := types.AsRecords(rec[key]); nested != nil {
				records = nested
				break
			}
		}
	}

	prices := make([]*Price, 0, len(records))
	for _, rec := range records {
		if nested := nestedPrices(rec); nested != nil {
			product := productInfoFrom(rec)
			for _, priceRec := range nested {
				prices = append(prices, normalizePrice(priceRec, product))
			}
			continue
		}
		prices = append(prices, normalizePrice(rec, nil))
	}
	return prices
}

// productInfo carries the parent product's fields onto flattened prices
type productInfo struct {
	name        string
	description string
	metadata    types.Metadata
}

func nestedPrices(rec map[string]any) []map[string]any {
	for _, key := range nestedPricesKeys {
		if v, ok := rec[key]; ok {
			if nested, isArray := v.([]any); isArray {
				return types.AsRecords(nested)
			}
		}
	}
	return nil
}

func productInfoFrom(rec map[string]any) *productInfo {
	info := &productInfo{}
	info.name, _ = types.PickString(rec, productNameKeys...)
	info.description, _ = types.PickString(rec, productDescKeys...)
	info.metadata = metadataFrom(rec)
	return info
}

func normalizePrice(rec map[string]any, product *productInfo) *Price {
	p := &Price{}

	p.ID, _ = types.PickString(rec, priceIDKeys...)

	if amount, ok := types.PickNumber(rec, amountKeys...); ok {
		p.UnitAmount = decimal.NewFromFloat(amount)
		p.HasAmount = true
	}
	p.Currency, _ = types.PickString(rec, currencyKeys...)
	p.RecurringInterval, _ = types.PickString(rec, intervalKeys...)

	// a price record may itself embed its product
	if embedded, ok := types.AsRecord(rec["product"]); ok {
		p.ProductName, _ = types.PickString(embedded, productNameKeys...)
		p.ProductDescription, _ = types.PickString(embedded, productDescKeys...)
		p.Metadata = metadataFrom(embedded)
	}
	if p.Metadata == nil {
		p.Metadata = metadataFrom(rec)
	}

	if product != nil {
		if p.ProductName == "" {
			p.ProductName = product.name
		}
		if p.ProductDescription == "" {
			p.ProductDescription = product.description
		}
		if len(p.Metadata) == 0 && len(product.metadata) > 0 {
			p.Metadata = product.metadata
		}
	}

	// a standalone price without an embedded product may still carry a
	// display name of its own
	if p.ProductName == "" {
		p.ProductName, _ = types.PickString(rec, "nickname", "name", "title")
	}

	return p
}

func metadataFrom(rec map[string]any) types.Metadata {
	raw, ok := types.PickAny(rec, metadataKeys...)
	if !ok {
		return nil
	}
	obj, ok := types.AsRecord(raw)
	if !ok {
		return nil
	}
	meta := make(types.Metadata, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			meta[k] = s
		}
	}
	return meta
}
