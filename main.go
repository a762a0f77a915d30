package main

import (
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"stockroom/config"
	"stockroom/loader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := loader.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	if err := loader.EnsureAdminUser(dbConn, os.Getenv("STOCKROOM_ADMIN_USER"), os.Getenv("STOCKROOM_ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Admin bootstrap failed: %v", err)
	}
	log.Println("Database initialization complete.")

	mux := http.NewServeMux()
	SetupRoutes(mux, dbConn)
	registerStatic(mux, cfg.StaticDir)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
		// Large slip commits and report exports have been observed to take
		// minutes on slow machines; keep the write window generous.
		ReadTimeout:  time.Minute,
		WriteTimeout: 5 * time.Minute,
	}

	log.Printf("Starting server on http://localhost%s", cfg.ListenAddr)
	if cfg.OpenBrowser {
		openBrowser("http://localhost" + cfg.ListenAddr)
	}
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

// registerStatic serves the front-end bundle. Unknown non-API paths fall
// back to index.html so browser-side routes survive a reload.
func registerStatic(mux *http.ServeMux, staticDir string) {
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		log.Printf("WARN: static dir %q not found; serving API only.", staticDir)
		return
	}
	fileServer := http.FileServer(http.Dir(staticDir))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		candidate := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}
