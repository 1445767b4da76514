package domain

import "errors"

var (
	// ErrInvalidGiftId ...
	ErrInvalidGiftId = errors.New("gift id must not be empty")
	// ErrGiftIdTooLong ...
	ErrGiftIdTooLong = errors.New("gift id cannot exceed 64 characters")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrInvalidSender ...
	ErrInvalidSender = errors.New("sender must be a valid public key")
	// ErrInvalidRecipient ...
	ErrInvalidRecipient = errors.New("recipient must be a valid public key")
	// ErrDuplicateGiftId is returned when initializing a gift whose derived
	// escrow address is already in use.
	ErrDuplicateGiftId = errors.New("gift id is already in use")
	// ErrGiftNotFound ...
	ErrGiftNotFound = errors.New("gift not found")
	// ErrAlreadyClaimed is returned by any settlement attempt on a settled
	// escrow, whichever of claim or refund retired it.
	ErrAlreadyClaimed = errors.New("gift has already been claimed")
	// ErrUnauthorizedRecipient ...
	ErrUnauthorizedRecipient = errors.New("only the designated recipient can claim this gift")
	// ErrUnauthorizedSender ...
	ErrUnauthorizedSender = errors.New("only the sender can refund this gift")
	// ErrGiftExpired is returned when claiming after the validity window.
	ErrGiftExpired = errors.New("gift validity window has expired")
	// ErrGiftNotExpired is returned when refunding before the validity window
	// has elapsed.
	ErrGiftNotExpired = errors.New("gift validity window has not yet elapsed")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds")
)
