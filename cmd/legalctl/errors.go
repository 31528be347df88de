package main

import (
	"fmt"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
)

// describe appends the raw model output to malformed response errors so it
// is visible on the terminal.
func describe(err error) error {
	if raw, ok := analysiserrors.RawResponse(err); ok {
		return fmt.Errorf("%w\nraw response:\n%s", err, raw)
	}
	return err
}
