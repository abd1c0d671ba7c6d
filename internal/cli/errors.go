package cli

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/matzehuels/monlayout/pkg/errors"
)

// ReportError prints err for the user and returns the process exit status.
// A nil error returns errors.ExitOK without printing anything.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return errors.ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		printError(w, "interrupted")
		return errors.ExitInterrupted
	}
	printError(w, "%s", errors.UserMessage(err))
	return errors.ExitCode(err)
}
