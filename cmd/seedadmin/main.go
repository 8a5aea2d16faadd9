package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/sethvargo/go-envconfig"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/infrastructure/config"
	mongodb "github.com/hacker123-star/k-learnstudio2/internal/infrastructure/db/mongo"
)

// seedadmin provisions an administrator account directly in the database.
// Admins have no self-service registration endpoint; this command is the
// only way to create one.
//
// Usage:
//
//	seedadmin -name "Jane Admin" -email jane@example.com
//
// The password is read from the ADMIN_PASSWORD environment variable when
// set, otherwise prompted for on the terminal without echo.
func main() {
	var (
		name  = flag.String("name", "", "display name for the admin account")
		email = flag.String("email", "", "email address for the admin account")
	)
	flag.Parse()

	if err := run(*name, *email); err != nil {
		fmt.Fprintln(os.Stderr, "seedadmin:", err)
		os.Exit(1)
	}
}

func run(name, email string) error {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)
	if name == "" || email == "" {
		return errors.New("both -name and -email are required")
	}

	password, err := readPassword()
	if err != nil {
		return err
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Only the Mongo settings are needed here, so the full Config (which
	// insists on JWT_SECRET) is not loaded.
	var cfg config.MongoConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return err
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.URI, Database: cfg.Database})
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx)

	admins := mongodb.NewAdminRepository(db)
	if err := admins.EnsureIndexes(ctx); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin, err := admins.Create(ctx, &domain.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAdminExists) {
			return fmt.Errorf("an admin with email %s already exists", email)
		}
		return err
	}

	fmt.Printf("admin %s created (id %s)\n", admin.Email, admin.ID)
	return nil
}

func readPassword() (string, error) {
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}
