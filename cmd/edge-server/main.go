package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/MJE43/blackjack-edge-go/internal/api"
	"github.com/MJE43/blackjack-edge-go/internal/store"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func main() {
	// .env is optional; flags override the environment.
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("EDGE_ADDR", "127.0.0.1:8080"), "listen address")
	dbPath := flag.String("db", envOr("EDGE_DB", "edge.db"), "chart cache path (empty disables caching)")
	decks := flag.Int("decks", atoiDef(os.Getenv("EDGE_DECKS"), 6), "default shoe size in decks")
	flag.Parse()

	var st *store.Store
	if *dbPath != "" {
		var err error
		st, err = store.Open(*dbPath)
		if err != nil {
			log.Fatalf("open chart cache: %v", err)
		}
		defer st.Close()
	}

	srv := api.NewServer(st, *decks)
	log.Printf("edge server listening on %s default_decks=%d cache=%q", *addr, *decks, *dbPath)
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		log.Fatal(err)
	}
}
