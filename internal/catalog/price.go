package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// priceRegex matches the first digit run in a price string, allowing
// thousands separators. Anything after a decimal point is dropped since
// prices are compared at whole-currency-unit granularity.
var priceRegex = regexp.MustCompile(`[0-9][0-9,]*`)

// ParsePrice converts heterogeneous price text ("$1,199.00", "1199",
// "Now: $599.99!") into whole currency units. The second return value
// is false when the text contains no digits at all; unparseable prices
// are filtering outcomes, not errors.
func ParsePrice(text string) (int, bool) {
	match := priceRegex.FindString(text)
	if match == "" {
		return 0, false
	}

	cleaned := strings.ReplaceAll(match, ",", "")
	price, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}

	return price, true
}
