package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yapay-ai/cloud-cost-optimizer/pkg/artifacts"
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Show pipeline artifact presence and location",
	RunE:  runArtifacts,
}

func init() {
	rootCmd.AddCommand(artifactsCmd)
}

func runArtifacts(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	printArtifactStatus(newArtifactStore(cfg))
	return nil
}

func printArtifactStatus(store *artifacts.Store) {
	fmt.Println("\nChecking artifacts...")
	for _, s := range store.Status() {
		label := "MISSING"
		if s.Exists {
			label = "OK"
		}
		fmt.Printf("  %s %s\n", label, s.Name)
	}
	abs, _ := filepath.Abs(store.Dir())
	fmt.Printf("\nLocation: %s\n", abs)
}
