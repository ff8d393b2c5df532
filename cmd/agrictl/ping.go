package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server and its database are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			return ping(cmd, newAPIClient(s))
		},
	}
}

func ping(cmd *cobra.Command, c *apiClient) error {
	start := time.Now()
	var health healthResponse
	err := c.do(cmd.Context(), http.MethodGet, "/service/health", nil, &health)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		return fmt.Errorf("ping %s failed after %s: %w", c.baseURL, elapsed, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok in %s: status=%s database=%s\n", elapsed, health.Status, health.Database)
	return nil
}
