// Generates a random signing secret suitable for the SECRET_KEY setting
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// 32 bytes gives a 256 bit key, matching the HS256 hash width
const defaultKeyBytes = 32

func main() {
	size := pflag.IntP("size", "n", defaultKeyBytes, "secret key length in bytes")
	pflag.Parse()

	if *size < defaultKeyBytes {
		fmt.Fprintf(os.Stderr, "refusing to generate a key shorter than %d bytes\n", defaultKeyBytes)
		os.Exit(1)
	}

	b := make([]byte, *size)
	if _, err := rand.Read(b); err != nil {
		fmt.Fprintf(os.Stderr, "error while generating secret key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hex.EncodeToString(b))
}
