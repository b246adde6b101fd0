package main

import (
	"context"
	"os"

	_ "usuarios/docs" // swagger docs
)

// @title Usuarios API
// @version 1.0
// @description User registration and login backed by MySQL.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
