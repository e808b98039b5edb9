package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Manirmaths/Naijaprep/internal/domain/question"
	"github.com/Manirmaths/Naijaprep/internal/seed"
	"github.com/Manirmaths/Naijaprep/internal/store"
)

func main() {
	_ = godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	defaultDB := os.Getenv("DATABASE_PATH")
	if defaultDB == "" {
		defaultDB = "naijaprep.db"
	}
	dbPath := flag.String("db", defaultDB, "SQLite database path")
	file := flag.String("file", "", "JSON question file (defaults to the bundled set)")
	flag.Parse()

	questions, err := loadQuestions(*file)
	if err != nil {
		logger.Error("failed to load questions", "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := seed.Apply(context.Background(), db, questions); err != nil {
		logger.Error("failed to seed questions", "error", err)
		os.Exit(1)
	}
	logger.Info("seeded questions", "count", len(questions), "database", *dbPath)
}

func loadQuestions(path string) ([]*question.Question, error) {
	if path == "" {
		return seed.Bundled()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Load(f)
}
