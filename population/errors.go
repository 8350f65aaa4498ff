package population

import "errors"

// ErrInvalidParameter indicates a non-finite or out-of-range input.
// Operations that return it leave their receiver unchanged.
var ErrInvalidParameter = errors.New("population: invalid parameter")
