package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const migrationsDir = "db/migrations"

func main() {
	name := flag.String("name", "", "migration name, e.g. add_game_histories")
	flag.Parse()

	if *name == "" {
		log.Fatal("migration name is required")
	}
	if strings.ContainsAny(*name, " /") {
		log.Fatal("migration name must not contain spaces or slashes")
	}

	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		log.Fatalf("create migrations dir: %v", err)
	}

	version := time.Now().UTC().Format("20060102150405")
	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(migrationsDir, fmt.Sprintf("%s_%s.%s.sql", version, *name, direction))
		if err := createMigration(path, direction); err != nil {
			log.Fatalf("create %s migration: %v", direction, err)
		}
		log.Printf("created %s", path)
	}
}

func createMigration(path, direction string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(fmt.Sprintf("-- %s migration\n", direction)), 0o644)
}
