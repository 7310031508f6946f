package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"virtual-conductor/internal/db"
	"virtual-conductor/internal/routefile"
)

func main() {
	sqlitePath := flag.String("sqlite", "", "Path to SQLite database")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN, used when -sqlite is empty")
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatalf("usage: import-route [-sqlite path | -dsn url] route.json...")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store *db.Store
	var err error
	if *sqlitePath != "" {
		store, err = db.OpenSQLite(*sqlitePath)
	} else if *dsn != "" {
		store, err = db.OpenPostgres(*dsn)
	} else {
		log.Fatalf("one of -sqlite or -dsn is required")
	}
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	for _, path := range flag.Args() {
		route, err := routefile.Load(path)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}
		if err := store.SaveRoute(ctx, route); err != nil {
			log.Printf("import %s: %v", path, err)
			continue
		}
		log.Printf("imported %s: line %d, %d stations", path, route.Line.ID, len(route.Stations))
	}
}
