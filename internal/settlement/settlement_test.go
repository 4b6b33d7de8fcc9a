package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/craftiax/smartContract/internal/ledger"
	"github.com/craftiax/smartContract/internal/models"
)

const (
	custodyAddr = "0x0000000000000000000000000000000000000C05"
	payerAddr   = "0x0000000000000000000000000000000000000A01"
	payeeAddr   = "0x0000000000000000000000000000000000000B02"
	feeAddr     = "0x0000000000000000000000000000000000000F03"
)

type fakeNative struct {
	balances map[string]decimal.Decimal
}

func newFakeNative() *fakeNative {
	return &fakeNative{balances: make(map[string]decimal.Decimal)}
}

func (f *fakeNative) BalanceOf(_ context.Context, addr string) (decimal.Decimal, error) {
	return f.balances[addr], nil
}

func (f *fakeNative) Transfer(_ context.Context, from, to string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ledger.ErrNegativeAmount
	}
	if f.balances[from].LessThan(amount) {
		return ledger.ErrInsufficientBalance
	}
	f.balances[from] = f.balances[from].Sub(amount)
	f.balances[to] = f.balances[to].Add(amount)
	return nil
}

type fakeToken struct {
	decimals   int32
	balances   map[string]decimal.Decimal
	allowances map[string]decimal.Decimal
}

func newFakeToken(decimals int32) *fakeToken {
	return &fakeToken{
		decimals:   decimals,
		balances:   make(map[string]decimal.Decimal),
		allowances: make(map[string]decimal.Decimal),
	}
}

func (f *fakeToken) Decimals() int32 { return f.decimals }

func (f *fakeToken) BalanceOf(_ context.Context, addr string) (decimal.Decimal, error) {
	return f.balances[addr], nil
}

func (f *fakeToken) Transfer(_ context.Context, from, to string, amount decimal.Decimal) error {
	if f.balances[from].LessThan(amount) {
		return ledger.ErrInsufficientBalance
	}
	f.balances[from] = f.balances[from].Sub(amount)
	f.balances[to] = f.balances[to].Add(amount)
	return nil
}

func (f *fakeToken) TransferFrom(ctx context.Context, spender, from, to string, amount decimal.Decimal) error {
	key := from + ":" + spender
	if f.allowances[key].LessThan(amount) {
		return ledger.ErrInsufficientAllowance
	}
	if err := f.Transfer(ctx, from, to, amount); err != nil {
		return err
	}
	f.allowances[key] = f.allowances[key].Sub(amount)
	return nil
}

func newTestEngine() (*Engine, *fakeNative, *fakeToken) {
	native := newFakeNative()
	token := newFakeToken(6)
	return NewEngine(native, token, custodyAddr, zerolog.Nop()), native, token
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		rate       int64
		prec       int32
		commission string
		payout     string
	}{
		{"three percent", "100", 300, 18, "3", "97"},
		{"default rate", "100", 250, 18, "2.5", "97.5"},
		{"base units floor", "100", 250, 0, "2", "98"},
		{"tiny amount", "0.0001", 50, 18, "0.0000005", "0.0000995"},
		{"full rate", "42", 10000, 18, "42", "0"},
		{"one base unit", "1", 250, 0, "0", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := dec(tt.amount)
			commission, payout := Split(amount, tt.rate, tt.prec)
			if !commission.Equal(dec(tt.commission)) {
				t.Errorf("commission = %s, want %s", commission, tt.commission)
			}
			if !payout.Equal(dec(tt.payout)) {
				t.Errorf("payout = %s, want %s", payout, tt.payout)
			}
			if !commission.Add(payout).Equal(amount) {
				t.Errorf("legs sum to %s, want %s", commission.Add(payout), amount)
			}
		})
	}
}

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int32
		want     string
	}{
		{"whole tokens", "1.5", 6, "1500000"},
		{"truncates excess digits", "0.0000001", 6, "0"},
		{"eighteen decimals", "1", 18, "1000000000000000000"},
		{"zero", "0", 6, "0"},
		{"no fraction", "250", 6, "250000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleAmount(dec(tt.amount), tt.decimals)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ScaleAmount(%s, %d) = %s, want %s", tt.amount, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestCollectNative(t *testing.T) {
	ctx := context.Background()
	engine, native, _ := newTestEngine()
	native.balances[payerAddr] = dec("100")

	if err := engine.Collect(ctx, payerAddr, dec("100"), models.CurrencyETH, dec("99")); !errors.Is(err, ErrIncorrectValue) {
		t.Fatalf("mismatched attached value: err = %v, want ErrIncorrectValue", err)
	}
	if err := engine.Collect(ctx, payerAddr, dec("100"), models.CurrencyETH, dec("100")); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !native.balances[custodyAddr].Equal(dec("100")) {
		t.Errorf("custody balance = %s, want 100", native.balances[custodyAddr])
	}
	if !native.balances[payerAddr].IsZero() {
		t.Errorf("payer balance = %s, want 0", native.balances[payerAddr])
	}
}

func TestCollectZeroAmountMovesNothing(t *testing.T) {
	ctx := context.Background()
	engine, native, _ := newTestEngine()

	if err := engine.Collect(ctx, payerAddr, decimal.Zero, models.CurrencyETH, decimal.Zero); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(native.balances) != 0 {
		t.Errorf("zero collect touched the ledger: %v", native.balances)
	}
}

func TestCollectRejectsZeroPayer(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	err := engine.Collect(ctx, "0x0000000000000000000000000000000000000000", dec("1"), models.CurrencyETH, dec("1"))
	if !errors.Is(err, ErrInvalidPayer) {
		t.Fatalf("err = %v, want ErrInvalidPayer", err)
	}
}

func TestCollectStable(t *testing.T) {
	ctx := context.Background()
	engine, _, token := newTestEngine()
	token.balances[payerAddr] = dec("5000000")

	err := engine.Collect(ctx, payerAddr, dec("5000000"), models.CurrencyUSDC, decimal.Zero)
	if !errors.Is(err, ledger.ErrInsufficientAllowance) {
		t.Fatalf("no allowance: err = %v, want ErrInsufficientAllowance", err)
	}

	token.allowances[payerAddr+":"+custodyAddr] = dec("5000000")
	if err := engine.Collect(ctx, payerAddr, dec("5000000"), models.CurrencyUSDC, decimal.Zero); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if !token.balances[custodyAddr].Equal(dec("5000000")) {
		t.Errorf("custody balance = %s, want 5000000", token.balances[custodyAddr])
	}
}

func TestCollectStableInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	engine, _, token := newTestEngine()
	token.balances[payerAddr] = dec("10")

	err := engine.Collect(ctx, payerAddr, dec("11"), models.CurrencyUSDC, decimal.Zero)
	if !errors.Is(err, ledger.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestCollectUnsupportedCurrency(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	err := engine.Collect(ctx, payerAddr, dec("1"), models.Currency("DOGE"), dec("1"))
	if !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("err = %v, want ErrUnsupportedCurrency", err)
	}
}

func TestDistributeNative(t *testing.T) {
	ctx := context.Background()
	engine, native, _ := newTestEngine()
	native.balances[custodyAddr] = dec("100")

	if err := engine.Distribute(ctx, payeeAddr, dec("100"), models.CurrencyETH, 300, feeAddr); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	if !native.balances[feeAddr].Equal(dec("3")) {
		t.Errorf("commission balance = %s, want 3", native.balances[feeAddr])
	}
	if !native.balances[payeeAddr].Equal(dec("97")) {
		t.Errorf("payee balance = %s, want 97", native.balances[payeeAddr])
	}
	if !native.balances[custodyAddr].IsZero() {
		t.Errorf("custody balance = %s, want 0", native.balances[custodyAddr])
	}
}

func TestDistributeStableFloorsCommission(t *testing.T) {
	ctx := context.Background()
	engine, _, token := newTestEngine()
	token.balances[custodyAddr] = dec("101")

	if err := engine.Distribute(ctx, payeeAddr, dec("101"), models.CurrencyUSDC, 250, feeAddr); err != nil {
		t.Fatalf("Distribute: %v", err)
	}
	// 101 * 250 / 10000 = 2.525, floored to whole base units.
	if !token.balances[feeAddr].Equal(dec("2")) {
		t.Errorf("commission balance = %s, want 2", token.balances[feeAddr])
	}
	if !token.balances[payeeAddr].Equal(dec("99")) {
		t.Errorf("payee balance = %s, want 99", token.balances[payeeAddr])
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	engine, native, token := newTestEngine()
	native.balances[custodyAddr] = dec("1.25")
	token.balances[custodyAddr] = dec("990000")

	gotNative, gotToken, err := engine.Sweep(ctx, feeAddr)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if !gotNative.Equal(dec("1.25")) || !gotToken.Equal(dec("990000")) {
		t.Errorf("swept %s / %s, want 1.25 / 990000", gotNative, gotToken)
	}
	if !native.balances[feeAddr].Equal(dec("1.25")) {
		t.Errorf("recipient native = %s, want 1.25", native.balances[feeAddr])
	}
	if !token.balances[feeAddr].Equal(dec("990000")) {
		t.Errorf("recipient token = %s, want 990000", token.balances[feeAddr])
	}
	if !native.balances[custodyAddr].IsZero() || !token.balances[custodyAddr].IsZero() {
		t.Error("custody not emptied")
	}
}

func TestIsZeroAddress(t *testing.T) {
	if !IsZeroAddress("") || !IsZeroAddress("0x0000000000000000000000000000000000000000") {
		t.Error("empty and zero addresses must be zero")
	}
	if IsZeroAddress(payerAddr) {
		t.Error("real address reported as zero")
	}
}
