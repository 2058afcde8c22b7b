package cache

import (
	"fmt"
	"strings"
)

// ListKey builds the cache key for a catalog listing under the given filters.
// Empty filter values participate in the key so distinct filter combinations
// never collide.
func ListKey(organizationID, status, category string, year int, orderBy string) string {
	yearPart := ""
	if year > 0 {
		yearPart = fmt.Sprintf("%d", year)
	}
	return "catalog:list:" + strings.Join([]string{organizationID, status, category, yearPart, orderBy}, "|")
}

// ItemIDKey builds the cache key for a single product addressed by identifier.
func ItemIDKey(productID string) string {
	return "catalog:item:id:" + productID
}

// ItemCodeKey builds the cache key for a single product addressed by its code.
func ItemCodeKey(code string) string {
	return "catalog:item:code:" + code
}
