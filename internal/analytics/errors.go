package analytics

import crerr "github.com/cockroachdb/errors"

// ErrInvalidArgument is returned for unknown directions or value columns and
// for gameweeks absent from a non-empty input.
var ErrInvalidArgument = crerr.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return crerr.Wrapf(ErrInvalidArgument, format, args...)
}

func checkGameweek(gw int) error {
	if gw < 1 {
		return invalidArgument("gameweek must be >= 1, got %d", gw)
	}
	return nil
}
