// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command namefix normalizes naming conventions across a source tree:
// declarations, their reference sites, and their backing file paths
// move together.
// Implements: prd007-technology-stack R4.1-R4.9;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "namefix",
		Short: "Naming-convention normalizer for source trees",
		Long:  "namefix renames declarations to match configured naming conventions, rewrites every reference to them, and moves their files to match, in one coordinated pass.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("workdir", ".", "Source tree root directory")
	rootCmd.PersistentFlags().StringSlice("policies", nil, "Policy names to run (default: all)")
	rootCmd.PersistentFlags().StringSlice("value-object-paths", nil, "Module path segments that activate value-object-suffix")
	rootCmd.PersistentFlags().StringSlice("repository-paths", nil, "Module path segments that activate repository-prefix")
	rootCmd.PersistentFlags().StringSlice("repository-prefixes", nil, "Recognized repository technology prefixes")
	rootCmd.PersistentFlags().String("default-repository-prefix", "", "Prefix applied to unprefixed repositories")
	rootCmd.PersistentFlags().StringSlice("command-paths", nil, "Module path segments that activate command-verb")
	rootCmd.PersistentFlags().StringSlice("error-paths", nil, "Module path segments that activate error-suffix")

	// Bind flags to viper.
	viper.BindPFlag("workdir", rootCmd.PersistentFlags().Lookup("workdir"))
	viper.BindPFlag("policies", rootCmd.PersistentFlags().Lookup("policies"))
	viper.BindPFlag("value-object-paths", rootCmd.PersistentFlags().Lookup("value-object-paths"))
	viper.BindPFlag("repository-paths", rootCmd.PersistentFlags().Lookup("repository-paths"))
	viper.BindPFlag("repository-prefixes", rootCmd.PersistentFlags().Lookup("repository-prefixes"))
	viper.BindPFlag("default-repository-prefix", rootCmd.PersistentFlags().Lookup("default-repository-prefix"))
	viper.BindPFlag("command-paths", rootCmd.PersistentFlags().Lookup("command-paths"))
	viper.BindPFlag("error-paths", rootCmd.PersistentFlags().Lookup("error-paths"))

	// Env vars: NAMEFIX_WORKDIR, NAMEFIX_POLICIES, etc.
	viper.SetEnvPrefix("NAMEFIX")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".namefix")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print namefix version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("namefix %s\n", version)
		},
	}
}
