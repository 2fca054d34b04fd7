// Package site renders one site: its assets, its posts, and its index page.
//
// A site is a flat source directory. Files ending in .txt are posts, files
// ending in .tmpl are templates, and every other visible file is an asset
// copied verbatim. Entries are handled in reverse-lexicographic name order:
// assets first, then posts, then the index.
package site
