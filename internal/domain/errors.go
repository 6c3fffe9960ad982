package domain

import "errors"

var (
	// Wallet errors
	ErrInvalidAmount       = errors.New("amount must be non-zero")
	ErrInvalidKind         = errors.New("unknown transaction kind")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateReference  = errors.New("reference id already recorded for this account")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already provisioned")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrInvalidTier  = errors.New("unknown subscription tier")
)
