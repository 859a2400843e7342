// Package nutrition computes scaled macros, daily totals and goal balance.
//
// Every function here is pure: no I/O, no shared state, and no error
// returns. Malformed numeric input degrades to zero instead of failing, since
// validation happens before values reach this package.
//
// Rounding is half-up and is applied on decimal values
// ([github.com/shopspring/decimal]) so that ties such as 247.5 kcal always
// round to 248 regardless of binary floating point error.
package nutrition
