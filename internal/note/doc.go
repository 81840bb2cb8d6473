// Package note writes the love note shown on the result screen.
//
// Generation is a two-step pipeline over llm.Completer: the first call asks
// for three candidate notes in the chosen style, the second asks the model
// to return only the best one. Any failure or empty answer ends in a
// name-interpolated fallback, so Generate never returns an error:
//
//   - a failed or empty step gives ShortFallback and skips the remaining step
//   - a missing credential or a recovered panic gives LongFallback
//
// A raw candidate is never shown in place of a failed pick.
package note
