package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/pythh/hotmatch/app/models"
	"github.com/pythh/hotmatch/app/repository"
	"github.com/pythh/hotmatch/internal/pkg/database"
	"github.com/pythh/hotmatch/internal/pkg/env"
)

// Operator CLI. There is no self-service signup, so accounts, API keys and
// dev pairing data all enter the system through here.
func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	database.SetupDatabase()
	repos := repository.GetGlobalRepositories()

	switch os.Args[1] {
	case "create-user":
		requireArgs(5, "create-user <name> <email> <password>")
		createUser(repos, os.Args[2], os.Args[3], os.Args[4])

	case "set-password":
		requireArgs(4, "set-password <email> <password>")
		setPassword(repos, os.Args[2], os.Args[3])

	case "issue-key":
		requireArgs(3, "issue-key <email>")
		issueKey(repos, os.Args[2])

	case "revoke-key":
		requireArgs(3, "revoke-key <email>")
		revokeKey(repos, os.Args[2])

	case "seed-pairings":
		requireArgs(3, "seed-pairings <file.json>")
		seedPairings(repos, os.Args[2])

	default:
		printUsage()
		os.Exit(1)
	}
}

func requireArgs(n int, usage string) {
	if len(os.Args) < n {
		log.Fatalf("Usage: go run cmd/admin/main.go %s", usage)
	}
}

func createUser(repos *repository.Repositories, name, email, password string) {
	user, err := models.CreateUser(name, email, password)
	if err != nil {
		log.Fatalf("Failed to build user: %v", err)
	}
	if err := repos.User.Create(user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	if _, err := models.GetOrCreateUserSettings(database.GetDB(), user.ID); err != nil {
		log.Fatalf("Failed to create user settings: %v", err)
	}
	log.Printf("User %d created (%s)", user.ID, user.Email)
}

func setPassword(repos *repository.Repositories, email, password string) {
	user, err := repos.User.GetByEmail(email)
	if err != nil {
		log.Fatalf("Failed to load user %s: %v", email, err)
	}
	if err := user.SetPassword(password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := repos.User.Update(user); err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}
	log.Printf("Password updated for %s", user.Email)
}

func issueKey(repos *repository.Repositories, email string) {
	user, err := repos.User.GetByEmail(email)
	if err != nil {
		log.Fatalf("Failed to load user %s: %v", email, err)
	}

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), user.ID)
	if err != nil {
		log.Fatalf("Failed to load user settings: %v", err)
	}

	rawKey, err := settings.IssueAPIKey()
	if err != nil {
		log.Fatalf("Failed to issue API key: %v", err)
	}
	if err := database.GetDB().Save(settings).Error; err != nil {
		log.Fatalf("Failed to store API key: %v", err)
	}

	// The raw key is only recoverable here; the database keeps the hash.
	fmt.Printf("API key for %s (store it now, it is not shown again):\n%s\n", user.Email, rawKey)
}

func revokeKey(repos *repository.Repositories, email string) {
	user, err := repos.User.GetByEmail(email)
	if err != nil {
		log.Fatalf("Failed to load user %s: %v", email, err)
	}

	settings, err := models.GetOrCreateUserSettings(database.GetDB(), user.ID)
	if err != nil {
		log.Fatalf("Failed to load user settings: %v", err)
	}

	settings.RevokeAPIKey()
	if err := database.GetDB().Save(settings).Error; err != nil {
		log.Fatalf("Failed to revoke API key: %v", err)
	}
	log.Printf("API key revoked for %s", user.Email)
}

func seedPairings(repos *repository.Repositories, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}

	var rows []models.Pairing
	if err := json.Unmarshal(data, &rows); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}

	for i := range rows {
		rows[i].ID = 0
		if err := repos.Pairing.Create(&rows[i]); err != nil {
			log.Fatalf("Failed to insert pairing %d (%s): %v", i, rows[i].StartupName, err)
		}
	}
	log.Printf("Seeded %d pairing rows from %s", len(rows), path)
}

func printUsage() {
	fmt.Println("Usage: go run cmd/admin/main.go [command]")
	fmt.Println("Available commands:")
	fmt.Println("  create-user <name> <email> <password> - Provision an account")
	fmt.Println("  set-password <email> <password>       - Reset an account password")
	fmt.Println("  issue-key <email>                     - Issue a new API key (prints the raw key once)")
	fmt.Println("  revoke-key <email>                    - Revoke the account's API key")
	fmt.Println("  seed-pairings <file.json>             - Ingest pairing rows from a JSON array")
	fmt.Println("Accounts and pairing data have no self-service path; this CLI is the only writer.")
}
