// Copyright 2026 The Chatwright Authors
// SPDX-License-Identifier: Apache-2.0

// chatwright-console is the terminal admin console for Chatwright
// bot accounts. It fetches the configuration schema and one account's
// configuration document from the console API, renders the document
// as a schema-driven form, and saves edits back through the API's
// validation pipeline.
//
// In-progress edits autosave to a local draft store; an unsaved draft
// from a previous session can be restored or discarded at startup.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/chatwright/chatwright/lib/config"
	"github.com/chatwright/chatwright/lib/consoleapi"
	"github.com/chatwright/chatwright/lib/draft"
	"github.com/chatwright/chatwright/lib/formui"
	"github.com/chatwright/chatwright/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var recordID string
	var logOutput string

	flagSet := pflag.NewFlagSet("chatwright-console", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to console config file (default: $CHATWRIGHT_CONFIG)")
	flagSet.StringVar(&recordID, "record", "", "account record ID to edit (required)")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON log records to this file")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other Chatwright
	// binaries.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("chatwright-console")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if arguments := flagSet.Args(); len(arguments) > 0 {
		return fmt.Errorf("unexpected argument: %s", arguments[0])
	}
	if recordID == "" {
		return fmt.Errorf("--record is required")
	}

	logger, closeLog, err := newLogger(logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	configuration, err := loadConfiguration(configPath)
	if err != nil {
		return err
	}
	logger.Info("configuration loaded",
		"environment", configuration.Environment,
		"base_url", configuration.API.BaseURL)

	client := consoleapi.NewClient(configuration.API.BaseURL, configuration.API.Token, nil)

	ctx, cancel := context.WithTimeout(context.Background(), configuration.API.Timeout())
	defer cancel()

	schemaRoot, err := client.FetchSchema(ctx)
	if err != nil {
		return fmt.Errorf("fetching configuration schema: %w", err)
	}
	document, err := client.FetchDocument(ctx, recordID)
	if err != nil {
		return fmt.Errorf("fetching record %s: %w", recordID, err)
	}

	var store *draft.Store
	if !configuration.Drafts.Disabled {
		store = draft.NewStore(configuration.Drafts.Dir)
		document = offerDraftRestore(store, recordID, document, logger)
	}

	model := formui.NewModel(schemaRoot, document, formui.Options{
		Backend:    client.Session(recordID),
		RecordID:   recordID,
		DraftStore: store,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// loadConfiguration resolves the config file: an explicit --config
// path wins, then $CHATWRIGHT_CONFIG, then built-in defaults.
func loadConfiguration(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// offerDraftRestore asks whether to resume an unsaved draft from a
// previous session. Runs on the plain terminal before the TUI takes
// over the screen. Declining discards the draft so it is not offered
// again.
func offerDraftRestore(store *draft.Store, recordID string, document any, logger *slog.Logger) any {
	saved, err := store.Load(recordID)
	if err != nil {
		return document
	}

	fmt.Fprintf(os.Stderr, "Unsaved draft for %s from %s. Restore it? [y/N] ",
		recordID, saved.SavedAt.Local().Format(time.RFC822))
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		logger.Info("draft restored", "record", recordID, "saved_at", saved.SavedAt)
		return saved.Document
	}

	if err := store.Discard(recordID); err != nil {
		logger.Warn("discarding declined draft", "record", recordID, "error", err)
	}
	return document
}

// newLogger builds the session logger. Without --log-output, records
// go to a text handler on stderr at warn level so the TUI stays
// clean; with it, full JSON debug records go to the file.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return logger, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log output: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Chatwright console — schema-driven configuration editor for bot accounts.

Fetches the configuration schema and the named account record from
the console API, then opens an interactive form. Edits validate
continuously against the server; ctrl+s saves. The raw JSON view
(tab) edits the same document as text.

Usage:
  chatwright-console --record <id> [flags]

Flags:
%s`, flagSet.FlagUsages())
}
