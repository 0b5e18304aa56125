package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nabilgpt/samia-tarot-ops/internal/app"
	"github.com/nabilgpt/samia-tarot-ops/internal/domain/health"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/connector"
	"github.com/nabilgpt/samia-tarot-ops/internal/infrastructure/persistence"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/breaker"
	"github.com/nabilgpt/samia-tarot-ops/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DoctorCommandHandler encapsulates logic for the doctor command.
type DoctorCommandHandler struct {
	doctorService health.DoctorService
	logger        logger.Logger
}

// Initialize wires a prober per configured vendor. The database is always
// probed; vendors whose credentials are absent are skipped with a warning so
// one missing key cannot hide the health of everything else.
func (commandHandler *DoctorCommandHandler) Initialize(_ *cobra.Command, _ []string) error {
	cfg, err := loadOpsConfig()
	if err != nil {
		return err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return err
	}

	probers := []health.Prober{
		persistence.NewDatabaseProber(cfg.Database, breaker.New(health.ProbePostgres)),
	}

	if err := cfg.BaaS.Validate(); err == nil {
		baasConnector, err := connector.NewBaaSAdminConnector(&cfg.BaaS, breaker.New(health.ProbeBaaSAuth), loggerInstance)
		if err != nil {
			return err
		}
		probers = append(probers, baasConnector)
	} else {
		loggerInstance.Warn("Skipping BaaS probe: ", err)
	}

	if err := cfg.Cloudflare.Validate(); err == nil {
		cloudflareConnector, err := connector.NewCloudflareConnector(&cfg.Cloudflare, breaker.New(health.ProbeCloudflare), loggerInstance)
		if err != nil {
			return err
		}
		probers = append(probers, cloudflareConnector)
	} else {
		loggerInstance.Warn("Skipping Cloudflare probe: ", err)
	}

	if err := cfg.SendGrid.Validate(); err == nil {
		sendGridConnector, err := connector.NewSendGridConnector(&cfg.SendGrid, breaker.New(health.ProbeSendGrid), loggerInstance)
		if err != nil {
			return err
		}
		probers = append(probers, sendGridConnector)
	} else {
		loggerInstance.Warn("Skipping SendGrid probe: ", err)
	}

	doctorService, err := app.NewDoctorService(loggerInstance, probers...)
	if err != nil {
		return err
	}

	commandHandler.doctorService = doctorService
	commandHandler.logger = loggerInstance
	return nil
}

// RunCmd probes every dependency and prints the results
func (commandHandler *DoctorCommandHandler) RunCmd(cmd *cobra.Command, _ []string) {
	checkup, err := commandHandler.doctorService.Run(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PROBE\tSTATUS\tLATENCY\tERROR")
	for _, probe := range checkup.Probes {
		status := "ok"
		if !probe.OK {
			status = "fail"
		}
		fmt.Fprintf(w, "%s\t%s\t%dms\t%s\n", probe.Name, status, probe.LatencyMs, probe.Error)
	}
	if err := w.Flush(); err != nil {
		commandHandler.logger.Error(err)
	}

	if !checkup.Healthy() {
		os.Exit(1)
	}
}

// InitDoctorCommands registers the doctor command
func InitDoctorCommands(rootCmd *cobra.Command) error {
	handler := &DoctorCommandHandler{}

	var doctorCmd = &cobra.Command{
		Use:               "doctor",
		Short:             "Probe the database and vendor APIs concurrently",
		PersistentPreRunE: handler.Initialize,
		Run:               handler.RunCmd,
	}

	rootCmd.AddCommand(doctorCmd)

	return nil
}
