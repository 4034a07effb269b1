// Command portal runs the customer portal API and offers direct access to the
// backend operations it proxies.
//
// @title Customer Portal API
// @version 1.0
// @description Session-authenticated JSON API over the customer SOAP backend.
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"customer-portal/internal/config"
	"customer-portal/internal/operations"
	"customer-portal/internal/soap"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "portal",
	Short: "Customer portal API over the SOAP backend",
	Long: `portal serves the customer portal JSON API. Every endpoint maps onto a
backend operation defined in the operation catalog.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, callCmd, callsCmd, operationsCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSOAPClient(cfg config.BackendConfig) *soap.Client {
	opts := []soap.Option{
		soap.WithTimeout(cfg.Timeout()),
		soap.WithServicePath(cfg.ServicePath),
		soap.WithSAPClient(cfg.Client),
	}
	if cfg.User != "" {
		opts = append(opts, soap.WithBasicAuth(cfg.User, cfg.Password))
	}
	if cfg.InsecureTLS {
		opts = append(opts, soap.WithInsecureTLS())
	}
	return soap.NewClient(cfg.BaseURL, opts...)
}

func loadCatalog(cfg config.BackendConfig) (*operations.Catalog, error) {
	catalog, err := operations.LoadCatalogFile(cfg.OperationsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load operation catalog: %w", err)
	}
	return catalog, nil
}
