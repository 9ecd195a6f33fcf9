// Package build runs one sitelinks build pass.
//
// A pass discovers the documents of the configured locale, indexes their
// permalinks, rewrites every document's links on a bounded worker pool and
// writes the result under the output directory. Broken links from all
// documents are collected before the configured policy decides whether the
// pass fails.
package build
