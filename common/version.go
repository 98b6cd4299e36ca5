package common

// Version is the build version, overridden at link time via
// -ldflags "-X github.com/aegis-platform/provisioning-verifier/common.Version=...".
var Version = "dev"
