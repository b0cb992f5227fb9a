package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Capture a new project description and extract its profile",
	Long: `Reads a free-text project description, saves it, and runs profile
extraction against the completion endpoint. The extracted profile is
sanitized against the description before it is stored.`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Println("Enter project description (finish with two blank lines):")
	description := readDescription(bufio.NewScanner(cmd.InOrStdin()))
	if description == "" {
		fmt.Println("No description entered.")
		return nil
	}

	profile, err := p.RunProfileStage(cmd.Context(), description)
	if err != nil {
		fmt.Printf("Profile extraction failed: %v\n", err)
		return nil
	}

	out, _ := json.MarshalIndent(profile, "", "  ")
	fmt.Println("\nProfile generated:")
	fmt.Println(string(out))
	return nil
}

// readDescription reads lines until a blank line follows another blank line
// (or the very first line is blank), mirroring double-enter-to-finish input.
func readDescription(scanner *bufio.Scanner) string {
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" && (len(lines) == 0 || lines[len(lines)-1] == "") {
			break
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
