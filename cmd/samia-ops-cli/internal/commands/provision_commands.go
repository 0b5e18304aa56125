package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/provision"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/connector"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/breaker"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/config"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ProvisionCommandHandler encapsulates logic for the provision command group.
type ProvisionCommandHandler struct {
	provisionService provision.ProvisionService
	cloudflare       config.CloudflareSettings
	sendGrid         config.SendGridSettings
	logger           logger.Logger
}

// Initialize wires the provisioning service over the Cloudflare and SendGrid
// connectors. Both vendors are required; provisioning is meaningless without
// their credentials.
func (commandHandler *ProvisionCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	if err := cfg.Cloudflare.Validate(); err != nil {
		return err
	}
	if err := cfg.SendGrid.Validate(); err != nil {
		return err
	}

	dnsConnector, err := connector.NewCloudflareConnector(&cfg.Cloudflare, breaker.New(health.ProbeCloudflare), loggerInstance)
	if err != nil {
		return err
	}

	emailConnector, err := connector.NewSendGridConnector(&cfg.SendGrid, breaker.New(health.ProbeSendGrid), loggerInstance)
	if err != nil {
		return err
	}

	provisionService, err := app.NewProvisionService(dnsConnector, emailConnector, &cfg.SendGrid, cfg.Paths.InstructionsDir, loggerInstance)
	if err != nil {
		return err
	}

	commandHandler.provisionService = provisionService
	commandHandler.cloudflare = cfg.Cloudflare
	commandHandler.sendGrid = cfg.SendGrid
	commandHandler.logger = loggerInstance
	return nil
}

// DNSCmd converges the zone on the record plan
func (commandHandler *ProvisionCommandHandler) DNSCmd(cmd *cobra.Command, _ []string) {
	appHost, err := cmd.Flags().GetString("app-host")
	if err != nil {
		commandHandler.logger.Error("invalid app-host flag ", err)
		return
	}
	if appHost == "" {
		commandHandler.logger.Error("the app-host flag is required")
		return
	}

	records := provision.DefaultRecordPlan(commandHandler.cloudflare.ZoneName, appHost)

	// The email provider's CNAME set belongs in the same zone; skip it with
	// a warning when domain authentication is unavailable.
	auth, err := commandHandler.provisionService.AuthenticateEmail(cmd.Context())
	if err != nil {
		commandHandler.logger.Warn("Continuing without the email provider's records: ", err)
	} else {
		records = provision.MergePlans(records, auth.DNS)
	}

	results, err := commandHandler.provisionService.EnsureDNS(cmd.Context(), records)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	failed := 0
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tACTION")
	for _, result := range results {
		action := result.Action
		if result.Err != nil {
			failed++
			action = "failed: " + result.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", result.Record.Type, result.Record.Name, action)
	}
	if err := w.Flush(); err != nil {
		commandHandler.logger.Error(err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// EmailCmd authenticates the sending domain and writes the DNS instructions
func (commandHandler *ProvisionCommandHandler) EmailCmd(cmd *cobra.Command, _ []string) {
	auth, err := commandHandler.provisionService.AuthenticateEmail(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	path, err := commandHandler.provisionService.WriteInstructions(commandHandler.sendGrid.Domain, auth.DNS)
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	fmt.Printf("DNS instructions written to %s\n", path)
}

// InitProvisionCommands registers the provision command group
func InitProvisionCommands(rootCmd *cobra.Command) error {
	handler := &ProvisionCommandHandler{}

	provisionCmd := &cobra.Command{
		Use:               "provision",
		Short:             "Provision DNS records and transactional email",
		PersistentPreRunE: handler.Initialize,
	}

	var dnsCmd = &cobra.Command{
		Use:   "dns",
		Short: "Converge the zone on the default record plan",
		Run:   handler.DNSCmd,
	}
	dnsCmd.Flags().StringP("app-host", "", "", "Hosting platform target, e.g. samia-tarot.onrender.com")
	provisionCmd.AddCommand(dnsCmd)

	var emailCmd = &cobra.Command{
		Use:   "email",
		Short: "Authenticate the sending domain and write DNS instructions",
		Run:   handler.EmailCmd,
	}
	provisionCmd.AddCommand(emailCmd)

	rootCmd.AddCommand(provisionCmd)

	return nil
}
