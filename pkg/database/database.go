package database

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	"smart-study-planner/configs"

	_ "modernc.org/sqlite"
)

func ConnectDB(cfg configs.Config) *sql.DB {
	// Buat folder data jika belum ada
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	// Aktifkan foreign key enforcement; sqlite mematikannya secara default
	db, err := sql.Open("sqlite", cfg.DBPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// sqlite hanya mengizinkan satu penulis, jadi serialisasi lewat pool
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	return db
}
