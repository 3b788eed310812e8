package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/openarch/archwatch/internal/common/config"
	"github.com/openarch/archwatch/internal/common/logger"
	"github.com/openarch/archwatch/internal/common/output"
	"github.com/openarch/archwatch/internal/updates"
	"github.com/openarch/archwatch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	// checkConfigPath overrides the default config file location
	checkConfigPath string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check all sources for updates once",
	Long: `Run a single online check of all update sources and print the results.

Examples:
  archwatch check              Check pacman, AUR and devel packages
  archwatch check --config f   Use an alternative config file`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "Path to config file")

	rootCmd.AddCommand(checkCmd)
}

func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Error("loading config: %v", err)
		os.Exit(1)
	}
	return cfg
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg := loadConfig(checkConfigPath)

	checker := updates.NewChecker(updates.WithDevelSuffixes(cfg.DevelSuffixes))
	ctx := context.Background()

	var (
		pacman    []updates.PacmanUpdate
		pacmanErr error
		aur       []updates.AurUpdate
		aurErr    error
		devel     []updates.DevelUpdate
		develErr  error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		pacman, pacmanErr = watcher.WithTimeout(ctx, cfg.Timeout(), func(ctx context.Context) ([]updates.PacmanUpdate, error) {
			due, _, err := checker.CheckPacmanOnline(ctx)
			return due, err
		})
	}()
	go func() {
		defer wg.Done()
		aur, aurErr = watcher.WithTimeout(ctx, cfg.Timeout(), func(ctx context.Context) ([]updates.AurUpdate, error) {
			due, _, err := checker.CheckAurOnline(ctx)
			return due, err
		})
	}()
	go func() {
		defer wg.Done()
		devel, develErr = watcher.WithTimeout(ctx, cfg.Timeout(), func(ctx context.Context) ([]updates.DevelUpdate, error) {
			due, _, err := checker.CheckDevelOnline(ctx)
			return due, err
		})
	}()
	wg.Wait()

	fmt.Println()
	printPacmanSection(pacman, pacmanErr)
	printAurSection(aur, aurErr)
	printDevelSection(devel, develErr)

	total := len(pacman) + len(aur) + len(devel)
	if pacmanErr == nil && aurErr == nil && develErr == nil {
		if total == 0 {
			output.PrintSuccess("System is up to date")
		} else {
			output.PrintInfo("%d update(s) available", total)
		}
		return
	}
	os.Exit(1)
}

func printPacmanSection(due []updates.PacmanUpdate, err error) {
	output.Pacman.Printf("Pacman (%d)\n", len(due))
	if err != nil {
		output.PrintError("check failed: %v", err)
		fmt.Println()
		return
	}
	for _, u := range due {
		output.Package.Printf("  %s ", u.Name)
		output.Dim.Printf("%s-%s", u.VersionCur, u.ReleaseCur)
		fmt.Print(" -> ")
		output.Version.Printf("%s-%s", u.VersionNew, u.ReleaseNew)
		if u.Repo != "" {
			output.Dim.Printf(" [%s]", u.Repo)
		}
		fmt.Println()
	}
	fmt.Println()
}

func printAurSection(due []updates.AurUpdate, err error) {
	output.Aur.Printf("AUR (%d)\n", len(due))
	if err != nil {
		output.PrintError("check failed: %v", err)
		fmt.Println()
		return
	}
	for _, u := range due {
		output.Package.Printf("  %s ", u.Name)
		output.Dim.Printf("%s-%s", u.VersionCur, u.ReleaseCur)
		fmt.Print(" -> ")
		output.Version.Printf("%s-%s", u.VersionNew, u.ReleaseNew)
		fmt.Println()
	}
	fmt.Println()
}

func printDevelSection(due []updates.DevelUpdate, err error) {
	output.Devel.Printf("Devel (%d)\n", len(due))
	if err != nil {
		output.PrintError("check failed: %v", err)
		fmt.Println()
		return
	}
	for _, u := range due {
		output.Package.Printf("  %s ", u.Name)
		output.Dim.Printf("%s-%s", u.VersionCur, u.ReleaseCur)
		fmt.Print(" -> ")
		output.Version.Printf("%s", u.RefIDNew)
		fmt.Println()
	}
	fmt.Println()
}
