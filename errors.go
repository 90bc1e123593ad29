package lunarday

import "errors"

var (
	// ErrInvalidDate is returned for a month outside 1..12 or a day that
	// does not exist in its month.
	ErrInvalidDate = errors.New("lunarday: invalid solar date")

	// ErrBeforeEpoch is returned for solar dates earlier than the table epoch.
	ErrBeforeEpoch = errors.New("lunarday: solar date before table epoch")

	// ErrOutOfRange is returned for solar dates past the last day the table covers.
	ErrOutOfRange = errors.New("lunarday: solar date beyond table coverage")

	// ErrMalformedTable is returned by the table constructors when the
	// table's shape cannot be indexed safely.
	ErrMalformedTable = errors.New("lunarday: malformed table")
)
