package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type venue struct {
	id     string
	name   string
	cityID string
	lat    float64
	lng    float64
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}
	log.Info("Successfully connected to the primary database.")

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	countries := [][2]string{
		{"country-dk", "Denmark"},
		{"country-se", "Sweden"},
	}
	for _, c := range countries {
		if _, err := tx.Exec("INSERT OR IGNORE INTO countries (id, name) VALUES (?, ?)", c[0], c[1]); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert country %s: %s", c[1], err)
		}
	}

	cities := [][3]string{
		{"city-cph", "Copenhagen", "country-dk"},
		{"city-aarhus", "Aarhus", "country-dk"},
		{"city-malmo", "Malmo", "country-se"},
	}
	for _, c := range cities {
		if _, err := tx.Exec("INSERT OR IGNORE INTO cities (id, name, country_id) VALUES (?, ?, ?)", c[0], c[1], c[2]); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert city %s: %s", c[1], err)
		}
	}

	venues := []venue{
		{"venue-faelledparken", "Faelledparken Courts", "city-cph", 55.7036, 12.5740},
		{"venue-amager", "Amager Strandpark Court", "city-cph", 55.6586, 12.6434},
		{"venue-aarhus-o", "Aarhus O Street Court", "city-aarhus", 56.1629, 10.2235},
		{"venue-malmo-folkets", "Folkets Park Court", "city-malmo", 55.5930, 13.0120},
	}
	for _, v := range venues {
		_, err := tx.Exec("INSERT OR IGNORE INTO venues (id, name, city_id, latitude, longitude) VALUES (?, ?, ?, ?, ?)",
			v.id, v.name, v.cityID, v.lat, v.lng)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert venue %s: %s", v.name, err)
		}
	}

	sports := [][3]string{
		{"sport-basketball", "basketball", "Basketball"},
		{"sport-padel", "padel", "Padel"},
		{"sport-football", "football", "Football"},
	}
	for _, s := range sports {
		if _, err := tx.Exec("INSERT OR IGNORE INTO sports (id, slug, name) VALUES (?, ?, ?)", s[0], s[1], s[2]); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert sport %s: %s", s[2], err)
		}
	}

	players := [][4]string{
		{"player-1", "Seeder Player A", "18-30", "city-cph"},
		{"player-2", "Seeder Player B", "18-30", "city-cph"},
		{"player-3", "Seeder Player C", "31+", "city-aarhus"},
		{"player-4", "Seeder Player D", "under-18", "city-malmo"},
	}
	for _, p := range players {
		_, err := tx.Exec("INSERT OR IGNORE INTO players (id, name, age_group, city_id) VALUES (?, ?, ?, ?)",
			p[0], p[1], p[2], p[3])
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert player %s: %s", p[1], err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}
	log.Info("Seeded reference data.",
		"countries", len(countries), "cities", len(cities), "venues", len(venues),
		"sports", len(sports), "players", len(players))
}
