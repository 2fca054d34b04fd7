package config

import (
	"git.home.luguber.info/inful/sitesmith/internal/foundation/normalization"
	"git.home.luguber.info/inful/sitesmith/internal/post"
)

// SiteErrorPolicy decides what a failed site does to the rest of the run.
type SiteErrorPolicy string

const (
	// SiteErrorAbort stops the run at the first failed site.
	SiteErrorAbort SiteErrorPolicy = "abort"
	// SiteErrorContinue builds the remaining sites and fails the run at the end.
	SiteErrorContinue SiteErrorPolicy = "continue"
)

var siteErrorNormalizer = normalization.NewEnumNormalizer("on_site_error", map[string]SiteErrorPolicy{
	"abort":    SiteErrorAbort,
	"continue": SiteErrorContinue,
}, SiteErrorAbort)

var orderNormalizer = normalization.NewEnumNormalizer("order", map[string]post.Order{
	"discovery": post.OrderDiscovery,
	"date":      post.OrderDate,
}, post.OrderDiscovery)

// NormalizeOrder resolves an order name, as given on the command line.
func NormalizeOrder(raw string) (post.Order, error) {
	return orderNormalizer.NormalizeWithValidation(raw)
}
