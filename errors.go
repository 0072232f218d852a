package twmarket

import (
	"errors"

	"github.com/twmarket/twmarket/internal/tickers"
)

// ErrSymbolNotFound is returned when an explicitly given symbol cannot be
// resolved in any directory. Callers match on the message text.
var ErrSymbolNotFound = tickers.ErrSymbolNotFound

// ErrSymbolRequired is returned by operations that only work per symbol.
var ErrSymbolRequired = errors.New(`the option "symbol" must be specified`)

// Selector validation errors for operations taking mutually exclusive
// symbol / exchange selectors. Raised before any network call.
var (
	ErrMissingSelector      = errors.New(`one of the options "symbol" or "exchange" must be specified`)
	ErrConflictingSelectors = errors.New(`the options "symbol" and "exchange" cannot both be specified`)
)
