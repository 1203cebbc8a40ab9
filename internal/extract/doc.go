// Package extract turns page content into profile signals.
//
// It provides three stateless extractors:
//   - Emails: email addresses found in visible page text
//   - Phones: phone-like digit runs found in visible page text
//   - ResolveIdentity: company name and tagline from homepage metadata
//
// The text patterns are deliberately permissive. Decorative numbers and
// other digit runs may be reported as phones; callers treat every result as
// a candidate, not a verified contact.
package extract
