// Package core orchestrates nutrilog: it validates input, calls the API,
// and applies each answer to the in-memory state as a single mutation.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - Input is validated before any remote call
//   - A failed call leaves the state unchanged
//   - Macros are always computed locally by the nutrition package
//   - UI-specific logic belongs in the cli package, not here
//
// # Days
//
// A day is the [start, end) range of a calendar date in the configured
// location. Meals are grouped by their consumed_at instant, never by the
// date string the server would print, so a meal logged at 23:30 in São Paulo
// stays on the local day even when the server runs in UTC.
//
// Range queries to the API are padded by one day on each side and filtered
// locally for the same reason.
package core
