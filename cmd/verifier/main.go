// The verifier command drives the tenant provisioning workflow end to end
// against a backend and exits 0 only if every hard check passes.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/aegis-platform/provisioning-verifier/api/clients"
	"github.com/aegis-platform/provisioning-verifier/cmd/flags"
	"github.com/aegis-platform/provisioning-verifier/verifier"
)

var tenantNameFlag = &cli.StringFlag{
	Name:  "tenant-name",
	Usage: "company name for the created tenant (default: timestamped test name)",
}

var skipHealthWaitFlag = &cli.BoolFlag{
	Name:  "skip-health-wait",
	Value: false,
	Usage: "skip the health-monitor confirmation and its wait",
}

var pollIntervalFlag = &cli.DurationFlag{
	Name:  "poll-interval",
	Value: 10 * time.Second,
	Usage: "interval between provisioning status polls",
}

var pollTimeoutFlag = &cli.DurationFlag{
	Name:  "poll-timeout",
	Value: 240 * time.Second,
	Usage: "total budget for provisioning to reach a terminal status",
}

var requestTimeoutFlag = &cli.DurationFlag{
	Name:  "request-timeout",
	Value: 30 * time.Second,
	Usage: "per-request timeout for backend API calls",
}

func main() {
	app := &cli.App{
		Name:  "provisioning-verifier",
		Usage: "Verify the tenant provisioning pipeline end to end",
		Flags: []cli.Flag{
			flags.BaseURLFlag,
			tenantNameFlag,
			skipHealthWaitFlag,
			pollIntervalFlag,
			pollTimeoutFlag,
			requestTimeoutFlag,
			flags.AdminEmailFlag,
			flags.AdminPasswordFlag,
			flags.MFASecretFlag,
			flags.LogJSONFlag,
			flags.LogDebugFlag,
			flags.LogUIDFlag,
			flags.LogServiceFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	tenantName := cCtx.String(tenantNameFlag.Name)
	if tenantName == "" {
		tenantName = fmt.Sprintf("E2E Test %d", time.Now().Unix()%10000)
	}

	baseURL := cCtx.String(flags.BaseURLFlag.Name)
	runner := &verifier.Runner{
		Backend: clients.NewClient(baseURL, cCtx.Duration(requestTimeoutFlag.Name)),
		Config: verifier.RunConfig{
			Credentials: verifier.Credentials{
				Email:     cCtx.String(flags.AdminEmailFlag.Name),
				Password:  cCtx.String(flags.AdminPasswordFlag.Name),
				MFASecret: cCtx.String(flags.MFASecretFlag.Name),
			},
			TenantName:     tenantName,
			PollInterval:   cCtx.Duration(pollIntervalFlag.Name),
			PollTimeout:    cCtx.Duration(pollTimeoutFlag.Name),
			SkipHealthWait: cCtx.Bool(skipHealthWaitFlag.Name),
		},
		Log: logger,
	}

	logger.Info("starting verification run", "baseURL", baseURL, "tenant", tenantName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verdict, err := runner.Run(ctx)
	if err != nil {
		logger.Error("verification run aborted", "status", string(verdict.Status), "err", err)
		return cli.Exit("FATAL: "+err.Error(), 1)
	}

	for _, warning := range verdict.Warnings {
		logger.Warn(warning)
	}

	if !verdict.Success() {
		logger.Error("verification failed",
			"status", string(verdict.Status),
			"tenant", verdict.TenantID,
			"reason", verdict.FailureReason)
		return cli.Exit(fmt.Sprintf("FAILED: %s: %s", verdict.Status, verdict.FailureReason), 1)
	}

	logger.Info("all checks passed",
		"tenant", verdict.TenantID,
		"endpoint", verdict.Endpoint,
		"warnings", len(verdict.Warnings))
	return nil
}
