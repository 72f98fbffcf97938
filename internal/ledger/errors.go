package ledger

import "errors"

// Guard failures returned by Open and Close. All of them are
// recoverable-by-user conditions: the caller surfaces the message and the
// portfolio is left untouched. Check with errors.Is.
var (
	ErrAlreadyPickedToday = errors.New("a stock has already been picked today")
	ErrInsufficientFunds  = errors.New("investment exceeds available balance")
	ErrInvalidAmount      = errors.New("investment must be positive")
	ErrInvalidPrice       = errors.New("entry price must be positive")
	ErrInvalidIndex       = errors.New("no position at that index")
	ErrAlreadySold        = errors.New("position has already been sold")
)
