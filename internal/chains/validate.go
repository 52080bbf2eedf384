package chains

import "regexp"

// grammars holds one structural rule per chain with a known address format.
// Rules are anchored full-string matches; adding a chain means adding a table
// entry, not new control flow.
var grammars = map[string]*regexp.Regexp{
	"bitcoin":  regexp.MustCompile(`^(?:[13][a-km-zA-HJ-NP-Z1-9]{25,34}|bc1[a-z0-9]{39,59})$`),
	"ethereum": regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`),
	"litecoin": regexp.MustCompile(`^(?:[LM3][a-km-zA-HJ-NP-Z1-9]{26,33}|ltc1[a-z0-9]{39,59})$`),
	"monero":   regexp.MustCompile(`^4[0-9AB][1-9A-HJ-NP-Za-km-z]{93}$`),
	"zcash":    regexp.MustCompile(`^(?:t1[a-zA-Z0-9]{33}|zs1[a-z0-9]{75})$`),
	"ripple":   regexp.MustCompile(`^r[0-9a-zA-Z]{24,34}$`),
}

// minUnknownLen is the floor applied to addresses of chains with no grammar.
const minUnknownLen = 10

// IsValid reports whether an address is structurally plausible for the given
// chain. Chains without a grammar entry get a permissive minimum-length check
// only, so addresses of newly listed chains are not silently discarded.
func IsValid(address, blockchain string) bool {
	if pattern, ok := grammars[blockchain]; ok {
		return pattern.MatchString(address)
	}
	return len(address) >= minUnknownLen
}

// HasGrammar reports whether a chain has an exact structural rule.
func HasGrammar(blockchain string) bool {
	_, ok := grammars[blockchain]
	return ok
}
