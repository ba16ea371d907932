package commands

import (
	"errors"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"

	"github.com/colonyops/todos/internal/printer"
)

// stdinIsTerminal reports whether the process can prompt the user.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// printFieldErrors prints one line per field error and reports whether err
// carried any.
func printFieldErrors(p *printer.Printer, err error) bool {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}
	for _, fe := range fieldErrs {
		p.Errorf("%s: %s", fe.Field, sentence(fe.Err.Error()))
	}
	return true
}

// fieldErrorData flattens field errors for JSON output.
func fieldErrorData(err error) map[string]any {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	data := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		data[fe.Field] = fe.Err.Error()
	}
	return data
}

// sentence capitalizes the first letter of msg for display.
func sentence(msg string) string {
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
