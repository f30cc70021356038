package repository

import "errors"

// ErrCapacityExceeded is returned by the capacity ledger when a conditional
// reserve matches zero rows, i.e. the requested seats would overshoot capacity.
var ErrCapacityExceeded = errors.New("capacity exceeded")
