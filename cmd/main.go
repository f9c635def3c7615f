package main

import (
	"context"
	"os"
)

// @title        Irrigation Dashboard API
// @version      1.0
// @description  Moisture classification, zone watering state and manual override for the irrigation demo.
// @BasePath     /
func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
