package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "loanbook/internal/adapter/http"
	"loanbook/internal/adapter/middleware"
	"loanbook/internal/adapter/repository/mysql"
	"loanbook/internal/config"
	"loanbook/internal/infrastructure/cache"
	"loanbook/internal/infrastructure/db"
	ledgerUC "loanbook/internal/usecase/ledger"
	loanUC "loanbook/internal/usecase/loan"
	repaymentUC "loanbook/internal/usecase/repayment"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	ledgers := mysql.NewLedgerRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	documents := mysql.NewDocumentRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	ledgerUsecase := ledgerUC.NewUsecase(ledgers, uow)
	loanUsecase := loanUC.NewUsecase(ledgers, loans, documents, uow)
	repaymentUsecase := repaymentUC.NewUsecase(ledgers, loans, uow)

	h := httpadp.NewHandler()
	lh := httpadp.NewLedgerHandler(ledgerUsecase)
	oh := httpadp.NewLoanHandler(loanUsecase)
	rh := httpadp.NewRepaymentHandler(repaymentUsecase)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idemp := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// read-only
	e.GET("/health", h.Health)
	e.GET("/ledgers/:ledger_id", lh.GetLedger)
	e.GET("/ledgers/:ledger_id/auto-pledge", lh.GetAutoPledge)
	e.GET("/ledgers/:ledger_id/admins/:caller_id", lh.IsAdmin)
	e.GET("/ledgers/:ledger_id/loans/:seed", oh.ResolveLoan)
	e.GET("/ledgers/:ledger_id/loans/:seed/exists", oh.LoanExists)
	e.GET("/loans/:loan_id", oh.GetLoan)

	// mutating, idempotency-guarded
	m := e.Group("", idemp)
	m.POST("/ledgers", lh.CreateLedger)
	m.POST("/ledgers/:ledger_id/tracker", lh.EnableTracker)
	m.PUT("/ledgers/:ledger_id/auto-pledge", lh.SetAutoPledge)
	m.POST("/ledgers/:ledger_id/loans", oh.Originate)
	m.POST("/ledgers/:ledger_id/loans/simple", oh.OriginateSimple)
	m.POST("/loans", oh.DeprecatedOriginate)
	m.POST("/loans/:loan_id/repayments", rh.Repay)
	m.POST("/ledgers/:ledger_id/loans/:seed/repayments", rh.RepayBySeed)
	m.POST("/loans/:loan_id/repayments/historical", rh.RepayHistorical)
	m.POST("/ledgers/:ledger_id/loans/:seed/repayments/historical", rh.RepayHistoricalBySeed)
	m.PUT("/loans/:loan_id/intervals/:index", oh.UpdateScheduleByIndex)
	m.PUT("/ledgers/:ledger_id/loans/:seed/intervals/:index", oh.UpdateScheduleBySeed)
	m.PUT("/loans/:loan_id/fee", oh.UpdateFee)
	m.POST("/loans/:loan_id/fee-interest", oh.AddFeeInterest)
	m.POST("/loans/:loan_id/documents", oh.AddDocument)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
