// Package flags holds the CLI flag definitions shared by the
// provisioning-verifier binaries, plus helpers to build the logger and
// server config from a parsed CLI context.
package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/aegis-platform/provisioning-verifier/common"
	"github.com/aegis-platform/provisioning-verifier/httpserver"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJSONFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUIDFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *httpserver.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second
	healthInterval := time.Duration(cCtx.Int64(HealthIntervalSecondsFlag.Name)) * time.Second

	return &httpserver.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		HealthInterval:           healthInterval,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

// Logging flags, shared by both binaries.

var LogJSONFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}

var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}

var LogUIDFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "provisioning-verifier",
	Usage: "add 'service' tag to logs",
}

// Backend connection and credentials.

var BaseURLFlag = &cli.StringFlag{
	Name:  "base-url",
	Value: "http://localhost:3000",
	Usage: "base URL of the provisioning backend",
}

var AdminEmailFlag = &cli.StringFlag{
	Name:    "admin-email",
	Value:   "admin@aegis.ai",
	Usage:   "platform admin email",
	EnvVars: []string{"AEGIS_ADMIN_EMAIL"},
}

var AdminPasswordFlag = &cli.StringFlag{
	Name:    "admin-password",
	Value:   "Admin12345!@",
	Usage:   "platform admin password",
	EnvVars: []string{"AEGIS_ADMIN_PASSWORD"},
}

var MFASecretFlag = &cli.StringFlag{
	Name:    "mfa-secret",
	Value:   "JBSWY3DPEHPK3PXP",
	Usage:   "base32-encoded TOTP shared secret for the admin account",
	EnvVars: []string{"AEGIS_MFA_SECRET"},
}

// Server flags (fake backend).

var ListenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:3000",
	Usage: "address to listen on for API",
}

var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}

var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}

var HealthIntervalSecondsFlag = &cli.Int64Flag{
	Name:  "health-interval-seconds",
	Value: 30,
	Usage: "period of the simulated container health-check cycle",
}
