package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stderr is an interactive terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner executes action while a spinner titled title is shown.
// On a non-interactive terminal the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	var actionErr error

	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() { actionErr = action(ctx) }).
		Run()
	if err != nil {
		return fmt.Errorf("spinner: %w", err)
	}

	return actionErr
}
