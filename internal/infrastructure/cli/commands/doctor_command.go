package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/shellbuddy/internal/domain"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container ContainerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, API key, shell and log directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := container()
			if c == nil || c.DoctorService == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			report, err := c.DoctorService.Run(cmd.Context())
			// Display report even if there were errors
			displayDoctorReport(cmd.OutOrStdout(), report)
			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.Failed() {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

func displayDoctorReport(out io.Writer, report domain.HealthReport) {
	for _, check := range report.Checks {
		fmt.Fprintf(out, "[%-5s] %s - %s\n",
			strings.ToUpper(string(check.Status)),
			check.Name,
			check.Details)
	}
}
