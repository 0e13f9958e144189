package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loanbook/internal/domain/balance"
	"loanbook/internal/domain/document"
	"loanbook/internal/domain/ledger"
	"loanbook/internal/domain/loan"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}
	db, err := gorm.Open(mysql.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates/updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ledger.LedgerConfig{},
		&ledger.Admin{},
		&ledger.TransferGrant{},
		&loan.Loan{},
		&loan.PaymentInterval{},
		&document.Document{},
		&document.RiskScore{},
		&balance.Asset{},
		&balance.Balance{},
	)
}
