// Command server runs the medication safety API: schedule validation,
// recurrence, conflict detection, interaction checks, and safety escalation.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app, err := newApplication()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.serve()
}
