package commands

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run many commands)",
		Long: `Start an interactive session where you can run multiple commands against the same board
without reconnecting. The session keeps running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("\n%s board - type 'help' for commands, 'exit' or 'quit' to leave\n", app.Cfg.Unit.Name)

			root := cmd.Root()
			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("❌ Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				switch parts[0] {
				case "exit", "quit":
					fmt.Println("👋 Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(root)
					continue
				}

				if err := runInSession(root, parts); err != nil {
					fmt.Printf("❌ Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}
}

// runInSession finds the (sub)command for parts and runs its RunE directly,
// skipping PersistentPreRunE so the app is not initialised again
func runInSession(root *cobra.Command, parts []string) error {
	target, rest, err := root.Find(parts)
	if err != nil || target == root {
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", parts[0])
	}
	if !sessionCommand(target) {
		return fmt.Errorf("%s is not available in an interactive session", target.CommandPath())
	}
	if target.RunE == nil && target.Run == nil {
		return fmt.Errorf("%s needs a subcommand: %s", target.Name(), strings.Join(subcommandNames(target), ", "))
	}

	// reset flags left over from the previous run
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(rest); err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}
	args := target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}

	if target.RunE != nil {
		return target.RunE(target, args)
	}
	target.Run(target, args)
	return nil
}

// sessionCommand excludes commands that make no sense inside a session
func sessionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c.HasParent(); c = c.Parent() {
		if slices.Contains([]string{"interactive", "serve", "completion", "help"}, c.Name()) {
			return false
		}
	}
	return true
}

func subcommandNames(cmd *cobra.Command) []string {
	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	return names
}

func printInteractiveHelp(root *cobra.Command) {
	fmt.Println("\nAvailable commands:")

	for _, cmd := range root.Commands() {
		if !sessionCommand(cmd) {
			continue
		}
		if !cmd.HasSubCommands() {
			fmt.Printf("  %-30s %s\n", cmd.Use, cmd.Short)
			continue
		}
		for _, sub := range cmd.Commands() {
			fmt.Printf("  %-30s %s\n", cmd.Name()+" "+sub.Use, sub.Short)
		}
	}

	fmt.Println("\n  help                           Show this help message")
	fmt.Println("  exit, quit                     Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting quoted strings
// Supports both single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune
	quoted := false

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
			quoted = true
		case unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}

	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}

	return args, nil
}
