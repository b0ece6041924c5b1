package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	logger "github.com/convergent-intelligence/convergence-protocol-sub000/internal/logging"
	"github.com/convergent-intelligence/convergence-protocol-sub000/internal/ui"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The
// cleanup function automatically calls ui.EnsureNewline() on the final
// message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// splitPhrase splits a phrase argument into words, tolerating extra
// whitespace. Commands accept the phrase either as one quoted argument or
// as twelve separate arguments.
func splitPhrase(args []string) []string {
	var words []string
	for _, arg := range args {
		words = append(words, strings.Fields(strings.ToLower(arg))...)
	}
	return words
}

// readPassphrase resolves the credential encryption passphrase: the
// COVENANT_CREDENTIAL_KEY environment variable when set, otherwise an
// interactive prompt with echo disabled.
func readPassphrase() (string, error) {
	if key := os.Getenv("COVENANT_CREDENTIAL_KEY"); key != "" {
		return key, nil
	}

	fmt.Fprint(os.Stderr, "Credential passphrase: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(raw), nil
}
