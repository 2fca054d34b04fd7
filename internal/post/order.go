package post

import (
	"fmt"
	"sort"
	"strings"
)

// Order is the policy that orders a site's posts list.
type Order string

const (
	// OrderDiscovery keeps posts in processing order, which is reverse
	// lexicographic by source name.
	OrderDiscovery Order = "discovery"
	// OrderDate sorts by creation_date, newest first.
	OrderDate Order = "date"
)

// ParseOrder accepts an order name case-insensitively. Empty means discovery.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderDiscovery:
		return OrderDiscovery, nil
	case OrderDate:
		return OrderDate, nil
	default:
		return "", fmt.Errorf("invalid order %q: valid values are %q, %q", s, OrderDiscovery, OrderDate)
	}
}

// RequiresDate reports whether every post must carry a creation_date.
func (o Order) RequiresDate() bool { return o == OrderDate }

// DiscoveryOrder returns a copy of names in reverse-lexicographic byte order.
func DiscoveryOrder(names []string) []string {
	out := append([]string(nil), names...)
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// Sort orders posts in place according to o. Date ordering is stable, so
// posts sharing a date keep their discovery order.
func Sort(posts []Rendered, o Order) {
	if o != OrderDate {
		return
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}
