package ledger

import "errors"

var (
	// ErrAccessDenied is returned when a capability token is not bound to
	// the club it is presented for.
	ErrAccessDenied = errors.New("capability token not valid for this club")

	// ErrAlreadySettled is returned when paying an obligation that is not
	// in a settleable status.
	ErrAlreadySettled = errors.New("investment already settled")

	// ErrPaymentWindowClosed is returned when payment is attempted before
	// the obligation's due date. Early settlement is rejected by design.
	ErrPaymentWindowClosed = errors.New("payment window not yet open")

	// ErrAmountMismatch is returned when the payment amount differs from
	// the amount payable. Neither overpayment nor partial payment is
	// supported.
	ErrAmountMismatch = errors.New("payment amount does not match amount payable")

	// ErrArithmeticOverflow is returned when obligation arithmetic would
	// overflow. The operation stores nothing.
	ErrArithmeticOverflow = errors.New("arithmetic overflow computing obligation")

	// ErrInvestmentNotFound is returned when no obligation exists under
	// the payer identity.
	ErrInvestmentNotFound = errors.New("no investment scheduled for payer")

	// ErrInvalidTransition is returned when a status change outside the
	// closed transition table is requested.
	ErrInvalidTransition = errors.New("invalid investment status transition")
)
