package goPurse

// Purse is an electronic purse whose balance is bounded by a fixed cap and
// whose lifetime is bounded by an operation budget. Debits are gated by a
// secret-code capability the purse references but does not own.
//
// Every operation is all-or-nothing: a rejection leaves balance and counters
// untouched. Like [SecretCode], a Purse makes no concurrency promise.
type Purse struct {
	balance         float64
	cap             float64
	operationBudget int
	operationsUsed  int
	gate            CodeGate
}

// NewPurse constructs a purse with the given cap, operation budget, and
// secret-code gate. Balance starts at zero.
//
// The constructor is deliberately permissive: cap and operationBudget signs
// are not validated here. [Builder.Build] validates its config instead.
func NewPurse(cap float64, operationBudget int, gate CodeGate) *Purse {
	return &Purse{
		cap:             cap,
		operationBudget: operationBudget,
		gate:            gate,
	}
}

// Balance returns the current balance.
func (p *Purse) Balance() float64 {
	return p.balance
}

// Cap returns the maximum balance this purse may ever hold.
func (p *Purse) Cap() float64 {
	return p.cap
}

// OperationsRemaining returns how many successful operations the purse will
// still accept.
func (p *Purse) OperationsRemaining() int {
	if p.operationsUsed >= p.operationBudget {
		return 0
	}
	return p.operationBudget - p.operationsUsed
}

// Credit adds amount to the balance.
//
// It fails with [ErrOperationBudgetExhausted], [ErrNegativeAmount], or
// [ErrCodeBlocked] from the shared pre-check, or with [ErrCapExceeded] when
// the credit would push the balance above the cap.
func (p *Purse) Credit(amount float64) error {
	if err := p.preCheck(amount); err != nil {
		return err
	}
	if p.balance+amount > p.cap {
		return ErrCapExceeded
	}

	p.balance += amount
	p.operationsUsed++
	return nil
}

// Debit removes amount from the balance after verifying code against the
// gate.
//
// Beyond the shared pre-check it fails with [ErrCodeBlocked] when the gate
// is locked, [ErrWrongCode] when verification fails, or
// [ErrNegativeBalanceForbidden] when the debit would overdraw the purse.
// The verification call itself may lock the gate; the debit causing the
// third consecutive failure still fails with ErrWrongCode because the
// blocked check precedes verification within the same call.
func (p *Purse) Debit(amount float64, code string) error {
	if err := p.preCheck(amount); err != nil {
		return err
	}
	if p.gate.IsBlocked() {
		return ErrCodeBlocked
	}
	if !p.gate.Verify(code) {
		return ErrWrongCode
	}
	if amount > p.balance {
		return ErrNegativeBalanceForbidden
	}

	p.balance -= amount
	p.operationsUsed++
	return nil
}

// preCheck order is part of the contract: budget, then amount sign, then
// gate lock state.
func (p *Purse) preCheck(amount float64) error {
	if p.operationsUsed >= p.operationBudget {
		return ErrOperationBudgetExhausted
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	if p.gate.IsBlocked() {
		return ErrCodeBlocked
	}
	return nil
}
