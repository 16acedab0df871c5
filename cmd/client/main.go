// Package main is the CLI client for the onboarding service: the user
// wizard, the admin configuration panel and the user table.
package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nstepanova/onboard/internal/client/admin"
	"github.com/nstepanova/onboard/internal/client/api"
	"github.com/nstepanova/onboard/internal/client/wizard"
)

var (
	version   string
	buildDate string
)

// prompt prints the label and reads one input line. ok is false when
// stdin is exhausted.
func prompt(scanner *bufio.Scanner, label string) (value string, ok bool) {
	fmt.Print(label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// runWizard walks a user through the three onboarding steps.
func runWizard(client *api.Client, allowedDomain string) {
	ctx := context.Background()
	w := wizard.New(client, wizard.WithAllowedDomain(allowedDomain))
	st := wizard.NewState()
	scanner := bufio.NewScanner(os.Stdin)

	for !st.Completed {
		fmt.Printf("\nStep %d of %d\n", st.Step, wizard.TotalSteps)

		var form wizard.Form
		var next wizard.State
		var err error

		if st.Step == 1 {
			if form.Email, err = readField(scanner, "Email: "); err != nil {
				return
			}
			if form.Password, err = readField(scanner, "Password: "); err != nil {
				return
			}
			next, err = w.SubmitCredentials(ctx, st, form)
		} else {
			kinds, lerr := w.LoadPage(ctx, st)
			if lerr != nil {
				fmt.Println("Error:", lerr)
				return
			}
			for _, k := range kinds {
				for _, field := range k.Fields() {
					value, rerr := readField(scanner, field.Label+": ")
					if rerr != nil {
						return
					}
					form.Set(field.Key, value)
				}
			}
			next, err = w.SubmitPage(ctx, st, form, kinds)
		}

		if err != nil {
			// The state is unchanged; the user retries the same step.
			fmt.Println("Error:", err)
			continue
		}
		st = next
	}

	fmt.Println("\nThank you! Redirecting you shortly...")
	time.Sleep(1500 * time.Millisecond)
}

// readField wraps prompt with an error for exhausted input.
func readField(scanner *bufio.Scanner, label string) (string, error) {
	value, ok := prompt(scanner, label)
	if !ok {
		return "", fmt.Errorf("input closed")
	}
	return value, nil
}

// runAdmin is the interactive configuration panel loop.
func runAdmin(client *api.Client) {
	ctx := context.Background()
	panel := admin.NewPanel(client)
	if err := panel.Load(ctx); err != nil {
		fmt.Println("Failed to load configuration:", err)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		line, ok := prompt(scanner, "admin> ")
		if !ok {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, list, set <name> <page>, save, exit")
		case "list":
			for _, entry := range panel.Entries() {
				fmt.Printf("%s -> page %d\n", entry.Name, entry.Page)
			}
		case "set":
			if len(args) < 3 {
				fmt.Println("Usage: set <name> <page>")
				continue
			}
			page, err := strconv.Atoi(args[2])
			if err != nil {
				fmt.Println("Page must be a number")
				continue
			}
			if err := panel.SetPage(args[1], page); err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Println("Updated locally; run 'save' to persist")
		case "save":
			resp, err := panel.Save(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				continue
			}
			fmt.Printf("%s (%d updated, %d failed)\n", resp.Message, resp.Updated, resp.Failed)
			for _, entry := range resp.Data {
				if entry.Error != "" {
					fmt.Printf("  %s: %s\n", entry.Name, entry.Error)
				}
			}
		case "exit":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// runUsers prints the read-only user listing.
func runUsers(client *api.Client) {
	users, err := client.Users(context.Background())
	if err != nil {
		fmt.Println("Failed to fetch users:", err)
		return
	}
	if err := admin.WriteUserTable(os.Stdout, users); err != nil {
		fmt.Println("Failed to render table:", err)
	}
}

// main parses command-line flags and dispatches to the wizard, admin or
// users commands.
func main() {
	var (
		cmd           string
		baseURL       string
		allowedDomain string
		showVer       bool
	)

	_ = godotenv.Load()

	flag.StringVar(&cmd, "cmd", "wizard", "command: wizard | admin | users")
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&allowedDomain, "domain", "", "restrict signup emails to this domain (empty allows any)")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Onboarding Client\nVersion: %s\nBuild Date: %s\n",
			cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	if url := os.Getenv("SERVER_URL"); url != "" {
		baseURL = url
	}

	client := api.New(baseURL)

	switch cmd {
	case "wizard":
		runWizard(client, allowedDomain)
	case "admin":
		runAdmin(client)
	case "users":
		runUsers(client)
	default:
		fmt.Println("Unknown command. Use -cmd wizard | admin | users")
		os.Exit(1)
	}
}
