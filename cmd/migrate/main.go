package main

import (
	"log"
	"os"

	"chat-reactions-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Plugin tables (chatd_room* tables belong to the chat daemon)
	log.Println("Step 1: Running AutoMigrate for reaction and reply tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Cascades onto the chat daemon's rooms and messages
	log.Println("Step 2: Ensuring foreign keys...")
	if err := database.EnsureForeignKeys(db); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("✅ Success: Database migration completed.")
}
