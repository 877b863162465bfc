package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var errNoPassphrase = errors.New("no passphrase: use --passphrase, CLOAK_PASSPHRASE, or run in a terminal")

// promptPassphrase reads a passphrase from the controlling terminal without
// echoing it.
func promptPassphrase(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoPassphrase
	}

	fmt.Fprint(w, "Passphrase: ")
	pass, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("passphrase read failed: %w", err)
	}
	return string(pass), nil
}
