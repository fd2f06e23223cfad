package commands

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command. Commands typed in the
// session run against the already initialized app, so Google sign-in and the
// store connection happen once.
func InteractiveCmd(app *AppContext, in io.Reader) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (authenticate once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without re-authenticating.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(app.Out, "\nStarting interactive session...")
			fmt.Fprintln(app.Out, "Type 'help' for available commands, 'exit' or 'quit' to leave")

			return runSession(sessionCommands(cmd.Parent()), in, app.Out)
		},
	}
}

// sessionCommands collects the root's subcommands that can be run from a session
func sessionCommands(root *cobra.Command) map[string]*cobra.Command {
	commands := make(map[string]*cobra.Command)
	for _, sub := range root.Commands() {
		switch sub.Name() {
		case "interactive", "completion", "help":
			continue
		}
		commands[sub.Name()] = sub
	}
	return commands
}

func runSession(commands map[string]*cobra.Command, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		name, args := parts[0], parts[1:]

		if name == "exit" || name == "quit" {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
		if name == "help" {
			printSessionHelp(commands, out)
			continue
		}

		target, ok := commands[name]
		if !ok {
			fmt.Fprintf(out, "Unknown command: %s (type 'help' for available commands)\n\n", name)
			continue
		}

		if err := runInSession(target, args); err != nil {
			fmt.Fprintf(out, "Error: %v\n\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

// runInSession resets flags left over from the previous run, then calls RunE
// directly so the root's PersistentPreRunE does not initialize the app again
func runInSession(cmd *cobra.Command, args []string) error {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := cmd.ParseFlags(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	args = cmd.Flags().Args()

	if cmd.Args != nil {
		if err := cmd.Args(cmd, args); err != nil {
			return err
		}
	}

	switch {
	case cmd.RunE != nil:
		return cmd.RunE(cmd, args)
	case cmd.Run != nil:
		cmd.Run(cmd, args)
	}
	return nil
}

func printSessionHelp(commands map[string]*cobra.Command, out io.Writer) {
	fmt.Fprintln(out, "\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Fprintf(out, "  %-45s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Fprintf(out, "\n  %-45s %s\n", "help", "Show this help message")
	fmt.Fprintf(out, "  %-45s %s\n\n", "exit, quit", "Exit the interactive session")
}
