// Command token mints a bearer token for local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"stockroom/internal/auth"
	"stockroom/internal/commons"
)

func main() {
	userID := flag.Int64("user", 1, "user id")
	companyID := flag.Int64("company", 0, "company id, 0 for none")
	superuser := flag.Bool("superuser", false, "grant superuser")
	perms := flag.String("perms", "components.view", "comma separated permissions")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := commons.LoadConfig(commons.ConfigPath())
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	claims := auth.Claims{UserID: *userID, Superuser: *superuser}
	if *companyID > 0 {
		claims.CompanyID = companyID
	}
	for _, p := range strings.Split(*perms, ",") {
		if p = strings.TrimSpace(p); p != "" {
			claims.Permissions = append(claims.Permissions, p)
		}
	}

	token, err := auth.MintAccessToken(cfg.Auth, time.Now(), *ttl, claims)
	if err != nil {
		log.Fatalf("minting token: %v", err)
	}
	fmt.Println(token)
}
