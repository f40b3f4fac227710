// FILE: src/cmd/token-gen/main.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"syscall"

	"daqingest/src/internal/service"

	"golang.org/x/term"
)

func main() {
	var (
		hashOnly = flag.Bool("hash", false, "Hash an existing token (prompts for it)")
		tokenLen = flag.Int("l", 32, "Token length in bytes")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "daqingest status token utility\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  Generate token and hash: %s [-l <length>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  Hash an existing token:  %s -hash\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	token := ""
	if *hashOnly {
		token = promptToken("Enter token: ")
		confirm := promptToken("Confirm token: ")
		if token != confirm {
			fmt.Fprintf(os.Stderr, "Error: Tokens don't match\n")
			os.Exit(1)
		}
	} else {
		if *tokenLen < 16 {
			fmt.Fprintf(os.Stderr, "Warning: tokens < 16 bytes are cryptographically weak\n")
		}
		raw := make([]byte, *tokenLen)
		if _, err := rand.Read(raw); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
			os.Exit(1)
		}
		token = base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(raw)
	}

	hash, err := service.HashToken(token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n# Add to daqingest.toml under [status]:")
	fmt.Printf("token_hash = %q\n", hash)

	if !*hashOnly {
		fmt.Printf("\n# Token (base64): %s\n", token)
	}
}

func promptToken(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	token, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading token: %v\n", err)
		os.Exit(1)
	}
	return string(token)
}
