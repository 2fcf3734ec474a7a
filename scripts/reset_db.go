package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Tables are cleared in one statement; there are no foreign keys between them.
var inventoryTables = []string{
	"safety_records",
	"sales",
	"purchases",
	"chemicals",
	"users",
}

func main() {
	keepUsers := flag.Bool("keep-users", false, "Keep user accounts, clear inventory only")
	assumeYes := flag.Bool("yes", false, "Skip the confirmation prompt")
	flag.Parse()

	tables := inventoryTables
	if *keepUsers {
		tables = tables[:len(tables)-1]
	}

	fmt.Println("Reset chemical inventory database")
	fmt.Println("This deletes every row in:")
	for _, t := range tables {
		fmt.Printf("  - %s\n", t)
	}

	if !*assumeYes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Reset cancelled.")
			return
		}
	}

	godotenv.Load()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "chem_db"),
	)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
			log.Fatalf("Failed to truncate %s: %v", table, err)
		}
		fmt.Printf("  ✓ Cleared %s\n", table)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	fmt.Println("Database reset successful.")
	if !*keepUsers {
		fmt.Println("The next account registered through /api/users/register becomes admin.")
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
