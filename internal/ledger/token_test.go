package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/craftiax/smartContract/internal/models"
)

const (
	aliceAddr   = "0x000000000000000000000000000000000000000A"
	bobAddr     = "0x000000000000000000000000000000000000000B"
	spenderAddr = "0x000000000000000000000000000000000000000C"
)

func openLedgerDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrapping database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.NativeAccount{},
		&models.TokenAccount{},
		&models.TokenAllowance{},
		&models.TokenMetadata{},
		&models.TicketBalance{},
	)
	if err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func newTestToken(t *testing.T) *StableToken {
	t.Helper()
	db := openLedgerDB(t)
	if err := db.Create(&models.TokenMetadata{Symbol: "USDC", Decimals: 6}).Error; err != nil {
		t.Fatalf("seeding token metadata: %v", err)
	}
	token, err := NewStableToken(db)
	if err != nil {
		t.Fatalf("NewStableToken: %v", err)
	}
	return token
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustBalance(t *testing.T, bal decimal.Decimal, err error, want string) {
	t.Helper()
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if !bal.Equal(dec(want)) {
		t.Fatalf("balance = %s, want %s", bal, want)
	}
}

func TestStableTokenDecimals(t *testing.T) {
	token := newTestToken(t)
	if token.Decimals() != 6 {
		t.Fatalf("decimals = %d, want 6", token.Decimals())
	}
}

func TestStableTokenTransfer(t *testing.T) {
	token := newTestToken(t)
	ctx := context.Background()

	if err := token.Credit(ctx, aliceAddr, dec("1000")); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := token.Transfer(ctx, aliceAddr, bobAddr, dec("400")); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	bal, err := token.BalanceOf(ctx, aliceAddr)
	mustBalance(t, bal, err, "600")
	bal, err = token.BalanceOf(ctx, bobAddr)
	mustBalance(t, bal, err, "400")

	if err := token.Transfer(ctx, aliceAddr, bobAddr, dec("601")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overdraft: err = %v, want ErrInsufficientBalance", err)
	}
	if err := token.Transfer(ctx, aliceAddr, bobAddr, dec("-1")); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("negative: err = %v, want ErrNegativeAmount", err)
	}
}

func TestStableTokenTransferUnknownSender(t *testing.T) {
	token := newTestToken(t)
	err := token.Transfer(context.Background(), aliceAddr, bobAddr, dec("1"))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestStableTokenAllowance(t *testing.T) {
	token := newTestToken(t)
	ctx := context.Background()

	if err := token.Credit(ctx, aliceAddr, dec("1000")); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	err := token.TransferFrom(ctx, spenderAddr, aliceAddr, bobAddr, dec("100"))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("no allowance: err = %v, want ErrInsufficientAllowance", err)
	}

	if err := token.Approve(ctx, aliceAddr, spenderAddr, dec("300")); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := token.TransferFrom(ctx, spenderAddr, aliceAddr, bobAddr, dec("100")); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}

	// The allowance is debited, not consumed whole.
	allowance, err := token.Allowance(ctx, aliceAddr, spenderAddr)
	mustBalance(t, allowance, err, "200")
	bal, err := token.BalanceOf(ctx, bobAddr)
	mustBalance(t, bal, err, "100")

	err = token.TransferFrom(ctx, spenderAddr, aliceAddr, bobAddr, dec("201"))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("over allowance: err = %v, want ErrInsufficientAllowance", err)
	}
}

func TestStableTokenApproveOverwrites(t *testing.T) {
	token := newTestToken(t)
	ctx := context.Background()

	if err := token.Approve(ctx, aliceAddr, spenderAddr, dec("300")); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if err := token.Approve(ctx, aliceAddr, spenderAddr, dec("50")); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	allowance, err := token.Allowance(ctx, aliceAddr, spenderAddr)
	mustBalance(t, allowance, err, "50")
}

func TestNativeTransfer(t *testing.T) {
	db := openLedgerDB(t)
	native := NewNative(db)
	ctx := context.Background()

	if err := native.Credit(ctx, aliceAddr, dec("1.5")); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := native.Transfer(ctx, aliceAddr, bobAddr, dec("0.5")); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	bal, err := native.BalanceOf(ctx, aliceAddr)
	mustBalance(t, bal, err, "1")
	bal, err = native.BalanceOf(ctx, bobAddr)
	mustBalance(t, bal, err, "0.5")

	if err := native.Transfer(ctx, aliceAddr, bobAddr, dec("2")); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("overdraft: err = %v, want ErrInsufficientBalance", err)
	}
}

func TestNativeZeroTransferIsNoop(t *testing.T) {
	db := openLedgerDB(t)
	native := NewNative(db)
	ctx := context.Background()

	if err := native.Transfer(ctx, aliceAddr, bobAddr, decimal.Zero); err != nil {
		t.Fatalf("zero transfer from empty account: %v", err)
	}
	bal, err := native.BalanceOf(ctx, bobAddr)
	mustBalance(t, bal, err, "0")
}

func TestTicketsMintBurn(t *testing.T) {
	db := openLedgerDB(t)
	tickets := NewTickets(db)
	ctx := context.Background()
	const tokenID = "0xabc"

	if err := tickets.Burn(ctx, tokenID, aliceAddr); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("burn without balance: err = %v, want ErrInsufficientBalance", err)
	}

	if err := tickets.Mint(ctx, tokenID, aliceAddr); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if err := tickets.Mint(ctx, tokenID, aliceAddr); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	held, err := tickets.BalanceOf(ctx, tokenID, aliceAddr)
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if held != 2 {
		t.Fatalf("held = %d, want 2", held)
	}

	if err := tickets.Burn(ctx, tokenID, aliceAddr); err != nil {
		t.Fatalf("Burn: %v", err)
	}
	held, err = tickets.BalanceOf(ctx, tokenID, aliceAddr)
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if held != 1 {
		t.Fatalf("held = %d, want 1", held)
	}
}
