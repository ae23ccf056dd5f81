// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/libris/internal/catalog"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the catalog file from the built-in collection",
	Long: `Init writes the built-in collection of works to the catalog file named by
catalog.path. An existing catalog is left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	path := cfg.Catalog.Path
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("catalog %s already exists (use --force to regenerate)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking catalog: %w", err)
	}

	c, err := catalog.Initialize(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (%d entries)\n", path, c.Len())
	return nil
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing catalog")

	rootCmd.AddCommand(initCmd)
}
