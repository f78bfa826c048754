package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/blogtech/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate, update or inspect blogtech.toml",
	}
	cmd.AddCommand(newConfigGenerateCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

type generateMode int

const (
	generateCreate generateMode = iota
	generateOverwrite
	generateUpdate
)

func newConfigGenerateCmd() *cobra.Command {
	var (
		out       string
		overwrite bool
		update    bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a commented default blogtech.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := generateCreate
			switch {
			case overwrite && update:
				return errors.New("choose either --overwrite or --update")
			case overwrite:
				mode = generateOverwrite
			case update:
				mode = generateUpdate
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			return generateConfig(cmd, out, mode)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for blogtech.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing config (keeps a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "add missing keys to an existing config (keeps a backup)")
	return cmd
}

func generateConfig(cmd *cobra.Command, path string, mode generateMode) error {
	w := cmd.OutOrStdout()
	current, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	content := config.RenderDefaultTOML()
	switch {
	case exists && mode == generateCreate:
		return fmt.Errorf("config already exists at %s; use --overwrite to replace it or --update to add missing keys", path)
	case exists && mode == generateUpdate:
		updated, changed := config.UpdateTOML(string(current))
		if !changed {
			_, _ = fmt.Fprintf(w, "Config already up to date: %s\n", path)
			return nil
		}
		content = updated
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if exists {
		backup, err := writeBackup(path, current)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Backup: %s\n", backup)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

// writeBackup stores data next to path, never clobbering an older backup.
func writeBackup(path string, data []byte) (string, error) {
	backup := path + ".bak"
	if _, err := os.Stat(backup); err == nil {
		backup = path + ".bak-" + time.Now().Format("20060102-150405")
	}
	return backup, os.WriteFile(backup, data, 0o600)
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after file, env and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if p, _ := cmd.Flags().GetString("config"); p != "" {
				v.SetConfigFile(p)
			}
			if err := config.Load(cmd.Context(), v); err != nil {
				return err
			}
			applyConfigFlagOverrides(cmd, v, rootFlagKeys)

			w := cmd.OutOrStdout()
			if f := v.ConfigFileUsed(); f != "" {
				_, _ = fmt.Fprintf(w, "# %s\n", f)
			}
			for _, opt := range config.GetConfigOptions() {
				_, _ = fmt.Fprintf(w, "%s = %v\n", opt.Key, v.Get(opt.Key))
			}
			return config.CheckConfigValidity(v)
		},
	}
}
