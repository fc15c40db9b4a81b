// cmd/adduser/main.go
// Creates or updates an API user allowed to call write routes when JWT_SECRET is set.
//
// Usage:
//
//	go run ./cmd/adduser -username coach -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/workoutapi/config"
	bundb "github.com/padraicbc/workoutapi/db"
	"github.com/padraicbc/workoutapi/handlers"
	"github.com/padraicbc/workoutapi/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	hash, err := handlers.HashPassword(*username, *password)
	if err != nil {
		log.Fatal("adduser: ", err)
	}

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	user := &models.User{
		Username: *username,
		Password: hash,
	}
	if err := bundb.NewStore(db).SaveUser(ctx, user); err != nil {
		log.Fatal("insert user: ", err)
	}

	fmt.Printf("user %q saved\n", *username)
}
