package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"trackify.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = crypto.HashPassword
	fatalfFn       = log.Fatalf
	stdin          io.Reader = os.Stdin
)

var errNoPassword = errors.New("no password given")

// resolvePassword takes the first argument, or the first line of in when there is none
func resolvePassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errNoPassword
	}
	return line, nil
}

func run(args []string) error {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	check := fs.String("check", "", "bcrypt hash to compare the password against")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := resolvePassword(fs.Args(), stdin)
	if err != nil {
		return err
	}

	if *check != "" {
		if !crypto.CheckPassword(password, *check) {
			return errors.New("password does not match hash")
		}
		printfFn("match\n")
		return nil
	}

	hash, err := generateHashFn(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	printfFn("%s\n", hash)
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fatalfFn("hash-gen: %v", err)
	}
}
