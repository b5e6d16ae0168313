package goPurse

import "errors"

var (
	// ErrNegativeAmount rejects a credit or debit called with a negative amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrCapExceeded rejects a credit that would push the balance above the purse cap.
	ErrCapExceeded = errors.New("cap exceeded")
	// ErrNegativeBalanceForbidden rejects a debit that would push the balance below zero.
	ErrNegativeBalanceForbidden = errors.New("negative balance forbidden")
	// ErrOperationBudgetExhausted rejects any operation once the purse has spent its operation budget.
	ErrOperationBudgetExhausted = errors.New("operation budget exhausted")
	// ErrCodeBlocked rejects an operation because the secret-code gate is locked out.
	ErrCodeBlocked = errors.New("secret code blocked")
	// ErrWrongCode rejects a debit whose candidate code did not match the secret code.
	ErrWrongCode = errors.New("wrong secret code")
	// ErrCodeNotOwned is returned by RevealCode when the engine was built on an
	// external gate and therefore holds no secret code of its own.
	ErrCodeNotOwned = errors.New("secret code not owned by engine")
	// ErrEngineNotReady is returned by engine operations on a nil or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
