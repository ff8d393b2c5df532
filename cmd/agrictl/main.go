// Command agrictl provisions test accounts and checks a running AgriRent server.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

// Settings are read from the environment (and a .env file when present).
type Settings struct {
	BaseURL    string        `envconfig:"AGRI_BASE_URL" default:"http://localhost:8080"`
	AnonKey    string        `envconfig:"AGRI_ANON_KEY"`
	ServiceKey string        `envconfig:"AGRI_SERVICE_KEY"`
	Timeout    time.Duration `envconfig:"AGRI_TIMEOUT" default:"10s"`
}

func loadSettings() (Settings, error) {
	_ = godotenv.Load()
	var s Settings
	if err := envconfig.Process("", &s); err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return s, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agrictl",
		Short:         "Operational helpers for the AgriRent backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSeedUsersCmd(), newPingCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
