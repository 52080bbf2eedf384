package chains

import (
	"regexp"
	"strings"
)

// aliases maps OFAC currency labels to canonical chain identifiers. Both bare
// ticker codes and the full feature-type labels appear in source data.
var aliases = map[string]string{
	"XBT":  "bitcoin",
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"LTC":  "litecoin",
	"XMR":  "monero",
	"ZEC":  "zcash",
	"DASH": "dash",
	"XRP":  "ripple",
	"BCH":  "bitcoin-cash",
	"BSV":  "bitcoin-sv",
	"USDT": "tether",
	"USDC": "usd-coin",
	"BSC":  "binance-smart-chain",
	"BNB":  "binance-coin",
	"Digital Currency Address - XBT":  "bitcoin",
	"Digital Currency Address - ETH":  "ethereum",
	"Digital Currency Address - LTC":  "litecoin",
	"Digital Currency Address - XMR":  "monero",
	"Digital Currency Address - ZEC":  "zcash",
	"Digital Currency Address - DASH": "dash",
	"Digital Currency Address - XRP":  "ripple",
	"Digital Currency Address - BCH":  "bitcoin-cash",
	"Digital Currency Address - BSV":  "bitcoin-sv",
	"Digital Currency Address - USDT": "tether",
	"Digital Currency Address - USDC": "usd-coin",
}

var tickerPattern = regexp.MustCompile(`Digital Currency Address\s*-\s*([A-Z]+)`)

// Resolve maps a raw currency label from the source data to a canonical chain
// identifier. Unknown ticker codes under the recognized label prefix fall back
// to the lowercased code so new chains are kept rather than dropped. The
// second return value is false when the label does not denote a currency
// address type at all.
func Resolve(label string) (string, bool) {
	if chain, ok := aliases[label]; ok {
		return chain, true
	}

	m := tickerPattern.FindStringSubmatch(label)
	if m == nil {
		return "", false
	}

	code := m[1]
	if chain, ok := aliases[code]; ok {
		return chain, true
	}
	return strings.ToLower(code), true
}
