package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/coursiva/coursiva-backend/internal/app"
)

func main() {
	// Local development convenience; production uses real env vars.
	_ = godotenv.Load()

	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Log.Info("Server listening", "addr", a.Cfg.HTTPAddr)
	if err := a.Run(); err != nil {
		a.Log.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
