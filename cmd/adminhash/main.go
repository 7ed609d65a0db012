// Command adminhash prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
//
//	adminhash 's3cret'
//	echo 's3cret' | adminhash
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"barorder/internal/auth"
)

func main() {
	password, err := readPassword(os.Args[1:])
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}
	if password == "" {
		log.Fatal("password must not be empty")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("hashing password: %v", err)
	}
	fmt.Println(hash)
}

func readPassword(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
