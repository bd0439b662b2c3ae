package main

import (
	_ "github.com/genie-desktop/genie-backend/docs"
	"github.com/genie-desktop/genie-backend/internal/bootstrap"
)

// @title Genie Backend API
// @version 1.0.0
// @description Screen capture, OCR and local model classification service with multi-turn chat sessions

// @host localhost:8000
// @BasePath /v1

func main() {
	bootstrap.Run()
}
