// Package sanitizer neutralises user input before it is interpolated into
// outbound mail.
//
// Two contexts are covered:
//
//   - Header values (Reply-To, Subject, custom headers, attachment names):
//     [Header] collapses every run of CR/LF characters into a single space
//     so a value can never terminate the header line it is written into.
//   - HTML bodies: [EscapeHTML] and [MultilineHTML] entity-encode the five
//     markup-significant characters (& < > " '). [SanitizeEmailHTML] is a
//     second, policy-based pass over an already rendered fragment.
//
// Plain-text bodies are not markup and are never passed through this
// package.
package sanitizer
