// Package contentpath resolves relative document links against an ordered
// list of content roots.
//
// A site has a base content tree and, per locale, a localized tree that
// mirrors it. Links found in a localized document resolve to localized
// siblings first and fall back to the base tree when no translation exists.
package contentpath
