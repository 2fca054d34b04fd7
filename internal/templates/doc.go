// Package templates loads a site's page templates and writes rendered pages
// into its deployment directory.
//
// A site directory carries `post.tmpl` and `index.tmpl`, optionally
// `base.tmpl`, and any number of further `*.tmpl` partials. With layout
// enabled, base.tmpl declares `{{block "name" .}}` regions and the page
// templates override them with `{{define "name"}}`; each page is then executed
// through base.tmpl.
package templates
