package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"rampsync.backend/pkg/crypto"
)

const operatorKeyBytes = 32

var (
	generateKeyFn = crypto.GenerateRandomToken
	hashSecretFn  = crypto.HashSecret
)

// runGenHash prints an operator key and the bcrypt hash to configure as
// OPERATOR_KEY_HASH. An existing key can be hashed with -key.
func runGenHash(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	keyFlag := fs.String("key", "", "operator key to hash (generated when empty)")
	costFlag := fs.Int("cost", crypto.DefaultCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key := *keyFlag
	if key == "" {
		generated, err := generateKeyFn(operatorKeyBytes)
		if err != nil {
			return err
		}
		key = "opk_" + generated
	}

	hash, err := hashSecretFn(key, *costFlag)
	if err != nil {
		return err
	}

	if *keyFlag == "" {
		_, _ = fmt.Fprintf(out, "OPERATOR_KEY=%s\n", key)
	}
	_, _ = fmt.Fprintf(out, "OPERATOR_KEY_HASH=%s\n", hash)
	return nil
}

func main() {
	if err := runGenHash(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("Failed to generate operator key hash: %v", err)
	}
}
