// Package cmd contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments and
// capturing command output.
package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/configs"
	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
)

// setupTestEnvironment points the data directory at a temp dir and installs
// a default configuration with known custodians.
func setupTestEnvironment(t *testing.T, initiator, coCustodian string) string {
	t.Helper()

	dataDir := t.TempDir()
	t.Setenv(configs.EnvDataDir, dataDir)
	t.Setenv("COVENANT_CREDENTIAL_KEY", "integration-test-passphrase")
	t.Setenv("NO_COLOR", "1")

	config := configs.DefaultConfig()
	config.Custodians.Initiator = initiator
	config.Custodians.CoCustodian = coCustodian

	settings := &configs.Settings{DataDir: dataDir}
	if err := configs.SaveConfig(settings.ConfigPath(), config); err != nil {
		t.Fatalf("Failed to write test configuration: %v", err)
	}

	return dataDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdout pipe: %v", err)
	}
	stderrReader, stderrWriter, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stderr pipe: %v", err)
	}

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	runErr := fn()

	stdoutWriter.Close()
	stderrWriter.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan
	return stdout + stderr, runErr
}

// runCovenant executes one covenant invocation against a fresh root command
// and returns the combined output.
func runCovenant(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose = false
	debug = false
	Logger = logger.Logger{}

	root := &cobra.Command{Use: "covenant", SilenceUsage: true}
	root.AddCommand(ConfigCmd)
	root.AddCommand(SeedCmd)
	root.AddCommand(PartnerCmd)
	root.AddCommand(SeatCmd)
	root.AddCommand(CredentialCmd)
	root.AddCommand(ApikeyCmd)
	root.AddCommand(SessionCmd)
	root.AddCommand(AuditCmd)
	root.SetArgs(args)

	return captureOutput(t, root.Execute)
}
