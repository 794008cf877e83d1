// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the spacefrontiers-mcp server.
// It exposes the Space Frontiers search API as agent-protocol tools
// over streamable HTTP or stdio, plus a small debug CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spacefrontiers-mcp/internal/searchapi"
	"github.com/pdiddy/spacefrontiers-mcp/internal/secrets"
	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if it is set, otherwise the secret
// value for key if one was loaded.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// clientConfig assembles the upstream API client configuration from
// flags, config file, environment and .secrets/.
func clientConfig() types.ClientConfig {
	baseURL := viper.GetString("api_endpoint")
	if baseURL == "" {
		baseURL = searchapi.DefaultBaseURL
	}
	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = "spacefrontiers-mcp/" + version
	}
	return types.ClientConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: userAgent,
		},
		BaseURL: baseURL,
		APIKey:  secretDefault(secrets.APIKeyFile, viper.GetString("api_key")),
	}
}

// rootCmd is the base command for the spacefrontiers-mcp CLI.
var rootCmd = &cobra.Command{
	Use:   "spacefrontiers-mcp",
	Short: "Agent-protocol server for the Space Frontiers search API",
	Long: `spacefrontiers-mcp exposes Space Frontiers search (scholarly and general
documents, Telegram posts, Reddit posts) as agent-protocol tools and prompts.

Run the server with the serve subcommand, over streamable HTTP or stdio.
The search subcommand issues a one-off search from the terminal for
debugging filter and endpoint behavior.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./spacefrontiers-mcp.yaml or ~/.config/spacefrontiers-mcp/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("spacefrontiers-mcp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "spacefrontiers-mcp"))
		}
	}

	viper.SetEnvPrefix("SPACE_FRONTIERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
