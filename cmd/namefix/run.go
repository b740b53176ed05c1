// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-technology-stack R4.3-R4.7.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/namefix/pkg/namefix"
)

// newRunCmd creates the "run" command.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Normalize naming conventions in the tree",
		Long:  "Run applies the configured naming policies to every declaration in the tree, rewrites references, and moves files. With --dry-run it prints the diff and the move plan instead.",
		RunE:  runNamefix,
	}

	cmd.Flags().BoolP("dry-run", "n", false, "Preview changes without touching the file system")
	cmd.Flags().Bool("allow-dirty", false, "Apply even when the git worktree has uncommitted changes")

	return cmd
}

// runNamefix executes a normalization run.
func runNamefix(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	allowDirty, _ := cmd.Flags().GetBool("allow-dirty")

	cfg := namefix.Config{
		WorkDir:                 viper.GetString("workdir"),
		DryRun:                  dryRun,
		AllowDirty:              allowDirty,
		Policies:                viper.GetStringSlice("policies"),
		ValueObjectPaths:        viper.GetStringSlice("value-object-paths"),
		RepositoryPaths:         viper.GetStringSlice("repository-paths"),
		RepositoryPrefixes:      viper.GetStringSlice("repository-prefixes"),
		DefaultRepositoryPrefix: viper.GetString("default-repository-prefix"),
		CommandPaths:            viper.GetStringSlice("command-paths"),
		ErrorPaths:              viper.GetStringSlice("error-paths"),
	}

	r, err := namefix.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := r.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if result != nil {
			printResult(result)
		}
		return err
	}

	printResult(result)
	return nil
}

// printResult outputs the result as JSON to stdout.
func printResult(result *namefix.Result) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling result: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

// newRulesCmd creates the "rules" command, listing the policy catalog
// the current configuration would run.
func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the naming policies that would run",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := namefix.New(namefix.Config{
				WorkDir:  viper.GetString("workdir"),
				Policies: viper.GetStringSlice("policies"),
			})
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			for _, name := range r.Policies() {
				fmt.Println(name)
			}
			return nil
		},
	}
}
