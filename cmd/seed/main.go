package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	defaultDSN := os.Getenv("DATABASE_URL")
	dsn := flag.String("dsn", defaultDSN, "database url")
	flag.Parse()

	if *dsn == "" {
		log.Fatal("DSN required via flag -dsn or DATABASE_URL env")
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Cannot ping DB:", err)
	}

	seedUser(db)
}

func seedUser(db *sql.DB) {
	name := "Ana Silva"
	username := "ana"
	password := "Senha123"

	if envUsername := os.Getenv("DB_SEED_USERNAME"); envUsername != "" {
		username = envUsername
	}

	if envName := os.Getenv("DB_SEED_NAME"); envName != "" {
		name = envName
	}

	if envPass := os.Getenv("DB_SEED_PASSWORD"); envPass != "" {
		password = envPass
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	query := `
		INSERT INTO users (name, username, password)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password = excluded.password;
	`

	_, err := db.Exec(query, name, username, string(hashed))
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}

	fmt.Printf("✅ User Seeded!\n   User: %s\n   Pass: %s\n", username, password)
}
