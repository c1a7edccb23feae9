package main

import (
	"flag"
	"fmt"
	"medimarket-service/internal/app/config"
	"medimarket-service/internal/pkg/utils"
	"os"

	"github.com/google/uuid"
)

// Version sets the default build version
var Version = "develop"

// token mints a session token for local testing against the HTTP API.
func main() {
	account := flag.String("account", "", "wallet account the session belongs to")
	sessionID := flag.String("session", "", "view session id (random when empty)")
	flag.Parse()

	if *account == "" {
		fmt.Fprintln(os.Stderr, "usage: token -account 0x... [-session id]")
		os.Exit(2)
	}
	if *sessionID == "" {
		*sessionID = uuid.NewString()
	}

	internalConfig := config.NewInternalConfig()
	token, err := utils.GenerateSessionJWT(*account, *sessionID, internalConfig.JWT.Secret, internalConfig.JWT.ExpTimeInHour)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Version: %s\n", Version)
	fmt.Printf("Session: %s\n", *sessionID)
	fmt.Println(token)
}
