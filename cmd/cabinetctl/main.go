// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sébastien Maillet

// cabinetctl drives a running cabinetd from the terminal. Passwords are
// read from the tty with echo off, never from argv.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/smaillet/cabinet/internal/adapter"
	"github.com/smaillet/cabinet/internal/logger"
	"github.com/smaillet/cabinet/models"
)

const usage = `Usage: cabinetctl [-addr URL] <command> [args]

Commands:
  profiles                                              list profiles
  create-profile <name>                                 create a profile
  open-profile <profile-id>                             unlock a profile
  close                                                 lock the active profile
  patients                                              list patients
  add-patient <first> <last> <birth> <gender> <phone> [email]
  rm-patient <patient-id>                               delete a patient
`

func main() {
	addr := flag.String("addr", "http://127.0.0.1:8787", "cabinetd base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.NewFileLogger("cabinetctl")
	cli := adapter.NewClient(adapter.ClientConfig{BaseURL: *addr})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := runCommand(ctx, cli, flag.Args()); err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
		fmt.Fprintf(os.Stderr, "cabinetctl: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, cli *adapter.Client, args []string) error {
	switch cmd, rest := args[0], args[1:]; cmd {
	case "profiles":
		return listProfiles(ctx, cli)
	case "create-profile":
		if len(rest) != 1 {
			return fmt.Errorf("create-profile needs exactly one argument: the profile name")
		}
		return createProfile(ctx, cli, rest[0])
	case "open-profile":
		if len(rest) != 1 {
			return fmt.Errorf("open-profile needs exactly one argument: the profile id")
		}
		return openProfile(ctx, cli, rest[0])
	case "close":
		return cli.CloseSession(ctx)
	case "patients":
		return listPatients(ctx, cli)
	case "add-patient":
		return addPatient(ctx, cli, rest)
	case "rm-patient":
		if len(rest) != 1 {
			return fmt.Errorf("rm-patient needs exactly one argument: the patient id")
		}
		return cli.DeletePatient(ctx, rest[0])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func listProfiles(ctx context.Context, cli *adapter.Client) error {
	profiles, err := cli.ListProfiles(ctx)
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("no profiles yet")
		return nil
	}
	for _, p := range profiles {
		fmt.Printf("%s  %s  (created %s)\n", p.ID, p.Name, p.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func createProfile(ctx context.Context, cli *adapter.Client, name string) error {
	password, err := promptPassword("New profile password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Repeat password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	summary, err := cli.CreateProfile(ctx, name, password)
	if err != nil {
		return err
	}

	fmt.Printf("created profile %s (%s)\n", summary.Name, summary.ID)
	return nil
}

func openProfile(ctx context.Context, cli *adapter.Client, profileID string) error {
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	summary, err := cli.OpenProfile(ctx, profileID, password)
	if err != nil {
		return err
	}

	fmt.Printf("opened profile %s (%s)\n", summary.Name, summary.ID)
	return nil
}

func listPatients(ctx context.Context, cli *adapter.Client) error {
	patients, err := cli.ListPatients(ctx)
	if err != nil {
		return err
	}

	if len(patients) == 0 {
		fmt.Println("no patients yet")
		return nil
	}
	for _, p := range patients {
		email := "-"
		if p.Email != nil {
			email = *p.Email
		}
		fmt.Printf("%s  %s %s  born %s  %s  %s  %s\n",
			p.ID, p.FirstName, p.LastName, p.BirthDate, p.Gender, p.Phone, email)
	}
	return nil
}

func addPatient(ctx context.Context, cli *adapter.Client, args []string) error {
	if len(args) < 5 || len(args) > 6 {
		return fmt.Errorf("add-patient needs: <first> <last> <birth> <gender> <phone> [email]")
	}

	input := models.PatientInput{
		FirstName: args[0],
		LastName:  args[1],
		BirthDate: args[2],
		Gender:    args[3],
		Phone:     args[4],
	}
	if len(args) == 6 {
		input.Email = &args[5]
	}

	patient, err := cli.CreatePatient(ctx, input)
	if err != nil {
		return err
	}

	fmt.Printf("added patient %s %s (%s)\n", patient.FirstName, patient.LastName, patient.ID)
	return nil
}

// promptPassword reads a password from the terminal with echo disabled.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
