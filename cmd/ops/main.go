package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"weekboard/internal/config"
	"weekboard/internal/ops"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:          "weekboard-ops",
		Short:        "Snapshot and restore weekboard data",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "weekboard.yml", "config file")

	loadCfg := func() (*config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg.FromEnv()
		return cfg, nil
	}

	var snapDir string
	snapshot := &cobra.Command{
		Use:   "snapshot",
		Short: "Archive the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			path, err := ops.Snapshot(cfg.DataDir, snapDir, time.Now())
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
	snapshot.Flags().StringVar(&snapDir, "out", "snapshots", "snapshot output directory")

	list := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := ops.List(snapDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}
	list.Flags().StringVar(&snapDir, "out", "snapshots", "snapshot output directory")

	restore := &cobra.Command{
		Use:   "restore <archive>",
		Short: "Restore a snapshot into the data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			return ops.Restore(args[0], cfg.DataDir)
		},
	}

	root.AddCommand(snapshot, list, restore)
	return root
}
