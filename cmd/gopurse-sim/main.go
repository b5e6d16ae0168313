// Command gopurse-sim drives randomized credit/debit traffic against a
// single engine and prints the resulting metrics snapshot.
//
// It is a behavior probe, not a benchmark: the interesting output is how the
// rejection counters and the lockout counter move as the wrong-PIN rate
// changes.
//
// Run:
//
//	go run ./cmd/gopurse-sim -ops 10000 -wrong-pin-rate 0.05
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	goPurse "github.com/MrEthical07/goPurse"
	"github.com/MrEthical07/goPurse/random"
)

var metricNames = []struct {
	id   goPurse.MetricID
	name string
}{
	{goPurse.MetricCreditSuccess, "credit.success"},
	{goPurse.MetricDebitSuccess, "debit.success"},
	{goPurse.MetricNegativeAmountRejected, "rejected.negative_amount"},
	{goPurse.MetricCapExceededRejected, "rejected.cap_exceeded"},
	{goPurse.MetricNegativeBalanceRejected, "rejected.negative_balance"},
	{goPurse.MetricBudgetExhaustedRejected, "rejected.budget_exhausted"},
	{goPurse.MetricWrongCodeRejected, "rejected.wrong_code"},
	{goPurse.MetricCodeBlockedRejected, "rejected.code_blocked"},
	{goPurse.MetricCodeLockout, "code.lockout"},
	{goPurse.MetricCodeReveal, "code.reveal"},
}

func main() {
	var (
		ops          = flag.Int("ops", 10000, "number of operations to attempt")
		capacity     = flag.Float64("cap", 1000, "purse cap")
		budget       = flag.Int("budget", 0, "operation budget; 0 means same as ops")
		wrongPinRate = flag.Float64("wrong-pin-rate", 0.02, "probability of debiting with a wrong PIN")
		debitRate    = flag.Float64("debit-rate", 0.5, "probability an operation is a debit")
		seed         = flag.Int64("seed", 1, "seed for the traffic generator and code generation")
	)
	flag.Parse()

	if *ops <= 0 || *capacity < 0 || *wrongPinRate < 0 || *wrongPinRate > 1 || *debitRate < 0 || *debitRate > 1 {
		fmt.Fprintln(os.Stderr, "invalid flag values")
		os.Exit(2)
	}
	if *budget <= 0 {
		*budget = *ops
	}

	engine, err := goPurse.New().
		WithCap(*capacity).
		WithOperationBudget(*budget).
		WithRandomSource(random.NewSeeded(*seed)).
		WithMetricsEnabled(true).
		WithLatencyHistograms(true).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	ctx := context.Background()

	pin, err := engine.RevealCode(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reveal code: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *ops; i++ {
		if engine.CodeBlocked() {
			break
		}

		amount := float64(rng.Intn(100))
		if rng.Float64() < *debitRate {
			code := pin
			if rng.Float64() < *wrongPinRate {
				code = "wrong"
			}
			_ = engine.Debit(ctx, amount, code)
			continue
		}
		_ = engine.Credit(ctx, amount)
	}

	fmt.Printf("purse %s\n", engine.PurseID())
	fmt.Printf("balance              %.2f\n", engine.Balance())
	fmt.Printf("operations remaining %d\n", engine.OperationsRemaining())
	fmt.Printf("code blocked         %v\n", engine.CodeBlocked())
	fmt.Println()

	snapshot := engine.MetricsSnapshot()
	for _, m := range metricNames {
		fmt.Printf("%-28s %d\n", m.name, snapshot.Counters[m.id])
	}
	if buckets, ok := snapshot.Histograms[goPurse.MetricDebitLatency]; ok {
		fmt.Printf("%-28s %v\n", "debit.latency.buckets", buckets)
	}
}
