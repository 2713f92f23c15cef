// motodiag serves and operates the motorcycle damage diagnosis backend.
//
// Usage:
//
//	motodiag serve
//	motodiag migrate
//	motodiag seed
//	motodiag diagnose --motorcycle=1 --symptoms=G1,G2,G7
//
// Configuration is read from the environment (DB_DRIVER, DATABASE_URL,
// JWT_SECRET_KEY, PORT, ...).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
