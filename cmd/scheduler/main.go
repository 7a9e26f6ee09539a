package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/ecspend/lending-engine/internal/config"
	"github.com/ecspend/lending-engine/internal/repository"
)

func main() {
	log.Println("Starting installment scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	historyRepo := repository.NewHistoryRepository(db)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Schedule tasks
	setupCronJobs(c, cfg, historyRepo)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, historyRepo repository.HistoryRepository) {
	// Daily job flipping past-due pending installments to overdue
	_, err := c.AddFunc(cfg.Scheduler.OverdueSpec, func() {
		markOverdueInstallments(historyRepo)
	})
	if err != nil {
		log.Printf("Error scheduling overdue job: %v", err)
	}

	// Morning job logging reminders for installments due today
	_, err = c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		sendInstallmentReminders(historyRepo)
	})
	if err != nil {
		log.Printf("Error scheduling reminder job: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}

func markOverdueInstallments(historyRepo repository.HistoryRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := historyRepo.MarkInstallmentsOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Overdue update failed: %v", err)
		return
	}
	log.Printf("Marked %d installments overdue", count)
}

func sendInstallmentReminders(historyRepo repository.HistoryRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Reminders cover everything due within the next 3 days.
	due, err := historyRepo.GetDueInstallments(ctx, time.Now().AddDate(0, 0, 3))
	if err != nil {
		log.Printf("Reminder lookup failed: %v", err)
		return
	}

	for _, installment := range due {
		log.Printf("Reminder: installment %d of transaction %s due %s (amount %s)",
			installment.SequenceNumber,
			installment.TransactionID,
			installment.DueDate.Format("2006-01-02"),
			installment.Amount.String(),
		)
	}
}
