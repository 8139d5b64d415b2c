// Command hashtoken produces the bcrypt hash of an operator token for
// the ADMIN_TOKEN_HASH environment variable.
package main

import (
	"fmt"
	"os"
	"syscall"

	"holidayapi/internal/auth"

	"golang.org/x/term"
)

func main() {
	fmt.Fprint(os.Stderr, "Enter token: ")
	token, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading token: %v\n", err)
		os.Exit(1)
	}
	if len(token) == 0 {
		fmt.Fprintln(os.Stderr, "token cannot be empty")
		os.Exit(1)
	}

	hash, err := auth.HashToken(string(token))
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashing token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
