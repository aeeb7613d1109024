package repository

import "errors"

// ErrAlreadyResolved is returned when a resolve hits a disruption that is
// already in the terminal state. The loser of a concurrent resolve race sees
// this rather than a silent overwrite.
var ErrAlreadyResolved = errors.New("disruption already resolved")
