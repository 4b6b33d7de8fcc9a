package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/craftiax/smartContract/internal/artistpay"
	"github.com/craftiax/smartContract/internal/helpers"
	"github.com/craftiax/smartContract/internal/models"
	"github.com/craftiax/smartContract/internal/ticketing"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// OwnerAddress controls the ticketing system; CommissionAddress
	// receives its cut; CustodyAddress holds funds mid-settlement.
	OwnerAddress      string
	CommissionAddress string
	CustodyAddress    string

	// The artist splitter has its own owner and payee.
	ArtistOwnerAddress    string
	ArtistPlatformAddress string

	StableSymbol   string
	StableDecimals int32
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		StableSymbol:   os.Getenv("STABLE_SYMBOL"),
		StableDecimals: 6,
	}
	if cfg.StableSymbol == "" {
		cfg.StableSymbol = "USDC"
	}
	if raw := os.Getenv("STABLE_DECIMALS"); raw != "" {
		n, err := helpers.StringToInt(raw)
		if err != nil || n < 0 || n > 18 {
			return nil, fmt.Errorf("invalid STABLE_DECIMALS: %q", raw)
		}
		cfg.StableDecimals = int32(n)
	}

	var err error
	if cfg.OwnerAddress, err = helpers.ParseAddress(os.Getenv("OWNER_ADDRESS")); err != nil {
		return nil, fmt.Errorf("invalid OWNER_ADDRESS: %v", err)
	}
	if cfg.CommissionAddress, err = helpers.ParseAddress(os.Getenv("COMMISSION_ADDRESS")); err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_ADDRESS: %v", err)
	}
	if cfg.CustodyAddress, err = helpers.ParseAddress(os.Getenv("CUSTODY_ADDRESS")); err != nil {
		return nil, fmt.Errorf("invalid CUSTODY_ADDRESS: %v", err)
	}
	if cfg.ArtistOwnerAddress, err = helpers.ParseAddress(os.Getenv("ARTIST_OWNER_ADDRESS")); err != nil {
		return nil, fmt.Errorf("invalid ARTIST_OWNER_ADDRESS: %v", err)
	}
	if cfg.ArtistPlatformAddress, err = helpers.ParseAddress(os.Getenv("ARTIST_PLATFORM_ADDRESS")); err != nil {
		return nil, fmt.Errorf("invalid ARTIST_PLATFORM_ADDRESS: %v", err)
	}
	return cfg, nil
}

func NewLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	if err := seedConfig(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

// MigrateModels creates every table the engine persists through.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Tier{},
		&models.MintCount{},
		&models.NativeAccount{},
		&models.TokenAccount{},
		&models.TokenAllowance{},
		&models.TokenMetadata{},
		&models.TicketBalance{},
		&models.PlatformConfig{},
		&models.ArtistConfig{},
		&models.PaymentLimit{},
		&models.VerifiedPayer{},
		&models.RefundFlag{},
		&models.AuditRecord{},
	)
}

// seedConfig creates the singleton configuration rows on first boot. Rows
// already present win over the environment, matching deployed-contract
// behavior where constructor arguments apply once.
func seedConfig(db *gorm.DB, cfg *Config) error {
	var meta models.TokenMetadata
	if err := db.First(&meta).Error; err != nil {
		meta = models.TokenMetadata{Symbol: cfg.StableSymbol, Decimals: cfg.StableDecimals}
		if err := db.Create(&meta).Error; err != nil {
			return err
		}
	}

	var platform models.PlatformConfig
	if err := db.First(&platform).Error; err != nil {
		platform = models.PlatformConfig{
			OwnerAddress:      cfg.OwnerAddress,
			CommissionRate:    ticketing.DefaultCommissionRate,
			CommissionAddress: cfg.CommissionAddress,
		}
		if err := db.Create(&platform).Error; err != nil {
			return err
		}
	}

	var artist models.ArtistConfig
	if err := db.First(&artist).Error; err != nil {
		artist = models.ArtistConfig{
			OwnerAddress:    cfg.ArtistOwnerAddress,
			PlatformAddress: cfg.ArtistPlatformAddress,
			CommissionRate:  artistpay.DefaultCommissionRate,
		}
		if err := db.Create(&artist).Error; err != nil {
			return err
		}
	}
	return nil
}
