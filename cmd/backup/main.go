package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"time"

	"prizeladder/internal/config"
	"prizeladder/internal/database"
	"prizeladder/internal/game"
	"prizeladder/internal/models"
	"prizeladder/internal/repository"
	"prizeladder/internal/service"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)

	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importInput := importCmd.String("input", "", "Input file path (required)")
	importClear := importCmd.Bool("clear", false, "Clear existing data before import (WARNING: destructive)")

	seedInput := seedCmd.String("input", "", "Question bank JSON file (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	backupService := service.NewBackupService(db)

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(backupService, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(backupService, db, *importInput, *importClear)

	case "seed":
		seedCmd.Parse(os.Args[2:])
		if *seedInput == "" {
			fmt.Println("Error: -input flag is required")
			seedCmd.PrintDefaults()
			os.Exit(1)
		}
		handleSeed(repository.NewQuestionRepository(db), *seedInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(backupService *service.BackupService, outputPath string) {
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	log.Printf("Exporting database to: %s", outputPath)
	if err := backupService.Export(outputPath); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Export complete! File size: %.2f MB", float64(fileInfo.Size())/1024/1024)
}

func handleImport(backupService *service.BackupService, db *database.DB, inputPath string, clearData bool) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		log.Fatalf("Input file does not exist: %s", inputPath)
	}

	if clearData {
		fmt.Print("WARNING: This will delete all existing data. Type 'yes' to confirm: ")
		var confirmation string
		fmt.Scanln(&confirmation)
		if confirmation != "yes" {
			log.Println("Import cancelled")
			return
		}

		log.Println("Clearing existing data...")
		if err := clearDatabase(db); err != nil {
			log.Fatalf("Failed to clear database: %v", err)
		}
	}

	log.Printf("Importing database from: %s", inputPath)
	if err := backupService.Import(inputPath); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import complete!")
}

// seedQuestion is one entry of a question bank seed file
type seedQuestion struct {
	Level      int    `json:"level"`
	Text       string `json:"text"`
	AnswerA    string `json:"answer_a"`
	AnswerB    string `json:"answer_b"`
	AnswerC    string `json:"answer_c"`
	AnswerD    string `json:"answer_d"`
	CorrectKey string `json:"correct_key"`
}

func handleSeed(questionRepo *repository.QuestionRepository, inputPath string) {
	file, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("Failed to open seed file: %v", err)
	}
	defer file.Close()

	var seeds []seedQuestion
	if err := json.NewDecoder(file).Decode(&seeds); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	for i, s := range seeds {
		if s.Level < 0 || s.Level >= game.LevelCount {
			log.Fatalf("Seed entry %d: level %d out of range 0..%d", i, s.Level, game.LevelCount-1)
		}
		q := models.Question{
			Level:      s.Level,
			Text:       s.Text,
			AnswerA:    s.AnswerA,
			AnswerB:    s.AnswerB,
			AnswerC:    s.AnswerC,
			AnswerD:    s.AnswerD,
			CorrectKey: s.CorrectKey,
		}
		if !slices.Contains(models.AnswerKeys, s.CorrectKey) {
			log.Fatalf("Seed entry %d: correct_key %q is not one of a, b, c, d", i, s.CorrectKey)
		}
		if err := questionRepo.CreateQuestion(&q); err != nil {
			log.Fatalf("Seed entry %d: insert failed: %v", i, err)
		}
	}
	log.Printf("Seeded %d questions", len(seeds))

	counts, err := questionRepo.CountByLevel()
	if err != nil {
		log.Fatalf("Failed to count question bank: %v", err)
	}
	for level := 0; level < game.LevelCount; level++ {
		if counts[level] == 0 {
			log.Printf("Warning: level %d still has no questions", level)
		}
	}
}

func clearDatabase(db *database.DB) error {
	// Delete in reverse order of dependencies
	tables := []string{
		"game_questions",
		"games",
		"sessions",
		"questions",
		"users",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
		log.Printf("Cleared table: %s", table)
	}

	return nil
}

func printUsage() {
	fmt.Println("Prize Ladder Database Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export database to JSON file")
	fmt.Println("  backup import [options]    Import database from JSON file")
	fmt.Println("  backup seed [options]      Load questions into the bank from JSON")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println("  -clear            Clear existing data before import (WARNING: destructive)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  backup export")
	fmt.Println("  backup export -output mybackup.json")
	fmt.Println("  backup import -input backup.json")
	fmt.Println("  backup import -input backup.json -clear")
	fmt.Println("  backup seed -input questions.json")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./prizeladder.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
