// Package build drives a whole run: it prepares the sites and deploy roots,
// then builds every site in turn into a freshly reset deployment directory.
//
// Sites are processed sequentially in lexicographic order of their directory
// names. What a failed site does to the rest of the run is decided by the
// on_site_error policy: abort stops at once, continue finishes the remaining
// sites and reports every failure at the end.
package build
