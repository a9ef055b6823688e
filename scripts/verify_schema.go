package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := "./data/quant.db"
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}
	fmt.Printf("Verifying database at: %s\n", dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"trades", "backtest_runs"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			fmt.Printf("MISSING table %s: %v\n", table, err)
			continue
		}
		fmt.Printf("OK table %s\n", table)

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err == nil {
			fmt.Printf("   rows: %d\n", count)
		}
	}

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		log.Fatalf("Query indexes failed: %v", err)
	}
	defer rows.Close()
	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		indexes = append(indexes, name)
	}
	fmt.Printf("Indexes: %s\n", strings.Join(indexes, ", "))
}
