package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Adds the composite indexes AutoMigrate does not create. Safe to rerun.
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Build connection string
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	// Connect to database
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Connected to database successfully")

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_submissions_task_status ON submissions (task_id, status);
		CREATE INDEX IF NOT EXISTS idx_submissions_buyer_status ON submissions (buyer_email, status);
		CREATE INDEX IF NOT EXISTS idx_submissions_worker_status ON submissions (worker_email, status);
		CREATE INDEX IF NOT EXISTS idx_tasks_open_slots ON tasks (required_workers) WHERE required_workers > 0;
		CREATE INDEX IF NOT EXISTS idx_withdrawals_status_created ON withdrawals (status, created_at);
	`

	log.Println("Creating indexes...")
	if _, err := db.Exec(indexSQL); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("Indexes created successfully")
}
