// The fakebackend command serves an in-memory implementation of the tenant
// provisioning API for development and end-to-end verifier runs.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/aegis-platform/provisioning-verifier/cmd/flags"
	"github.com/aegis-platform/provisioning-verifier/httpserver"
)

var stepSecondsFlag = &cli.Int64Flag{
	Name:  "step-seconds",
	Value: 15,
	Usage: "duration of each simulated provisioning step",
}

var failAtStepFlag = &cli.StringFlag{
	Name:  "fail-at-step",
	Usage: "force provisioning to fail at the named step (for testing failure paths)",
}

var containerEndpointFlag = &cli.StringFlag{
	Name:  "container-endpoint",
	Value: "http://127.0.0.1:3000",
	Usage: "endpoint reported for provisioned tenant containers",
}

func main() {
	app := &cli.App{
		Name:  "fake-backend",
		Usage: "Serve a simulated tenant provisioning backend",
		Flags: []cli.Flag{
			flags.ListenAddrFlag,
			flags.MetricsAddrFlag,
			flags.AdminEmailFlag,
			flags.AdminPasswordFlag,
			flags.MFASecretFlag,
			flags.HealthIntervalSecondsFlag,
			flags.DrainSecondsFlag,
			flags.PprofFlag,
			stepSecondsFlag,
			failAtStepFlag,
			containerEndpointFlag,
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

	passwordHash, err := bcrypt.GenerateFromPassword(
		[]byte(cCtx.String(flags.AdminPasswordFlag.Name)), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash admin password", "err", err)
		return err
	}

	listenAddr := cCtx.String(flags.ListenAddrFlag.Name)
	cfg := flags.ConfigureServer(cCtx, logger, listenAddr)

	srv, err := httpserver.New(cfg, httpserver.BackendConfig{
		AdminEmail:        cCtx.String(flags.AdminEmailFlag.Name),
		AdminPasswordHash: passwordHash,
		MFASecret:         cCtx.String(flags.MFASecretFlag.Name),
		ContainerEndpoint: cCtx.String(containerEndpointFlag.Name),
		StepDuration:      time.Duration(cCtx.Int64(stepSecondsFlag.Name)) * time.Second,
		FailAtStep:        cCtx.String(failAtStepFlag.Name),
	})
	if err != nil {
		logger.Error("Failed to create server", "err", err)
		return err
	}

	srv.RunInBackground()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	<-exit

	logger.Info("Shutting down")
	srv.Shutdown()
	return nil
}
