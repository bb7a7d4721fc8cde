package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{
	Symbol:         "$",
	Precision:      2,
	Thousand:       ",",
	Decimal:        ".",
	Format:         "%s%v",
	FormatNegative: "-%s%v",
	FormatZero:     "%s%v",
}

// Currency formats an amount as en-US dollars, e.g. "$1,234.50".
func Currency(amount interface{}) string {
	var d decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v != nil {
			d = *v
		}
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int64:
		d = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err == nil {
			d = parsed
		}
	}
	ac := usd
	return ac.FormatMoney(d)
}
