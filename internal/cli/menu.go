package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMenu(cmd)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func printHeader() {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println(strings.Repeat(" ", 15) + "CLOUD COST OPTIMIZER - LLM POWERED")
	fmt.Println(strings.Repeat(" ", 20) + "AI-Driven Infrastructure Cost Analysis")
	fmt.Println(strings.Repeat("=", 70))
}

func printMenu() {
	fmt.Println("\nMAIN MENU")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Println("1. Enter new project description.")
	fmt.Println("2. Run complete cost analysis.")
	fmt.Println("3. View recommendations.")
	fmt.Println("4. Show artifacts.")
	fmt.Println("5. Exit.")
	fmt.Println(strings.Repeat("-", 70))
}

// runMenu loops over the numbered options until exit, EOF or interrupt.
// Interrupt is a graceful exit with status 0.
func runMenu(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer p.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-interrupt
		fmt.Println("\nInterrupted by user.")
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		printHeader()
		printMenu()
		fmt.Print("\nSelect option (1-5): ")

		if !scanner.Scan() {
			fmt.Println("\nExiting...")
			return nil
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			printHeader()
			fmt.Println("Enter project description (finish with two blank lines):")
			description := readDescription(scanner)
			if description == "" {
				fmt.Println("No description entered.")
				continue
			}
			if _, err := p.RunProfileStage(cmd.Context(), description); err != nil {
				fmt.Printf("Profile extraction failed: %v\n", err)
			} else {
				fmt.Println("Profile saved.")
			}

		case "2":
			printHeader()
			if err := runFullAnalysis(cmd, p, scanner); err != nil {
				fmt.Printf("Analysis failed: %v\n", err)
			}

		case "3":
			printHeader()
			report, err := p.files.LoadReport()
			if err != nil {
				fmt.Println("No report found. Please run option 2 first.")
				continue
			}
			printFullRecommendations(report)

		case "4":
			printArtifactStatus(p.files)

		case "5":
			fmt.Println("\nExiting...")
			return nil
		}
	}
}
