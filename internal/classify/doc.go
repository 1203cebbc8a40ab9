// Package classify assigns purpose to the links found on a page.
//
// Two matchers live here:
//   - Classifier: files an internal link under one intent category
//     (about, products, research, careers, contact) by keyword
//   - SocialMatcher: recognizes links to social platforms by domain
//
// Both are driven by ordered rule tables. Order matters: the first rule that
// matches decides the result, so tables are slices rather than maps.
package classify
