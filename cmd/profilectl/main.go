package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"perfil/internal/client"
	"perfil/internal/config"
	"perfil/internal/core/form"
	"perfil/internal/domain"
)

// stdoutNotifier renders notifications as terminal toasts.
type stdoutNotifier struct{}

func (stdoutNotifier) Notify(n domain.Notification) {
	fmt.Printf("[%s] %s: %s\n", n.Variant, n.Title, n.Message)
}

func main() {
	name := flag.String("name", "", "new display name")
	oldPassword := flag.String("old-password", "", "current password (required to change password)")
	newPassword := flag.String("new-password", "", "new password")
	show := flag.Bool("show", false, "print the current profile and exit")
	flag.Parse()

	cfg := config.Load()
	if cfg.APIToken == "" {
		log.Fatal("PERFIL_API_TOKEN is required")
	}

	ctx := context.Background()

	api := client.New(cfg.APIBaseURL, cfg.APIToken)
	f := form.New(api, api, stdoutNotifier{})

	if err := f.Load(ctx); err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	values := f.Values()

	if *show {
		fmt.Printf("Name:     %s\nUsername: %s\n", values.Name, values.Username)
		return
	}

	if *name != "" {
		f.SetName(*name)
	}
	if *oldPassword != "" {
		f.SetOldPassword(*oldPassword)
	}
	if *newPassword != "" {
		f.SetNewPassword(*newPassword)
	}

	err := f.Submit(ctx)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		for field, message := range validationErr.Fields {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, message)
		}
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Submit failed: %v", err)
	}
}
