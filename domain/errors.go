package domain

import "errors"

var (
	// ErrInternalServerError will throw if any Internal Server Error happens
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item does not exist
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrInvalidAddress      = errors.New("Invalid address")
	ErrInvalidChainId      = errors.New("invalid chain id")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// ErrUnknownBidder is returned when a chain-observed bid cannot be
	// attributed to any stored user.
	ErrUnknownBidder = errors.New("bidder not found for chain bid")
	// ErrUnknownListing is returned when a token cannot be mapped to any
	// stored listing.
	ErrUnknownListing = errors.New("listing not found for token")
)
