package main

import (
	"fmt"
	"net/http"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"diaconisas/internal/adapters/apiclient"
	"diaconisas/internal/application/reconcile"
	"diaconisas/internal/config"
	"diaconisas/internal/domain/period"
	"diaconisas/internal/logging"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// app is the state shared by every subcommand once the root pre-run has loaded it.
type app struct {
	envFile   string
	apiURL    string
	tokenFile string

	cfg    config.Config
	clock  period.Clock
	client *apiclient.Client
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "diaconisas",
		Short:        "Church attendance from the command line",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional dotenv file")
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (default from DIACONISAS_CLIENT_BASE_URL)")
	root.PersistentFlags().StringVar(&a.tokenFile, "token-file", "", "where the login token is kept")

	root.AddCommand(
		newLoginCmd(a),
		newAttendanceCmd(a),
		newStatsCmd(a),
		newReportCmd(a),
		newDashboardCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.Client.BaseURL = a.apiURL
	}
	if a.tokenFile != "" {
		cfg.Client.TokenFile = a.tokenFile
	}
	a.cfg = cfg

	// Server logs go to stderr in JSON; the CLI keeps them terse.
	if _, err := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: "text"}); err != nil {
		return err
	}

	a.clock, err = period.NewClock(cfg.Timezone)
	if err != nil {
		return err
	}
	token, err := apiclient.LoadToken(cfg.Client.TokenFile)
	if err != nil {
		return err
	}
	a.client = apiclient.New(cfg.Client.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.Client.Timeout}),
		apiclient.WithToken(token),
	)
	return nil
}

func (a *app) reconciler() *reconcile.Reconciler {
	return reconcile.New(a.client, a.client, reconcile.NewBatchWriter(a.cfg.Client.Concurrency, a.cfg.Client.WriteDelay))
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("DIACONISAS_PASSWORD")
			}
			token, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := apiclient.SaveToken(a.cfg.Client.TokenFile, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (default $DIACONISAS_PASSWORD)")
	return cmd
}
