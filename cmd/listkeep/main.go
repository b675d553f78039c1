package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"listkeep/internal/cli"
)

// itemVerbs may be used without the "items" prefix: `listkeep add Milk`.
var itemVerbs = map[string]bool{
	"list":  true,
	"add":   true,
	"edit":  true,
	"rm":    true,
	"clear": true,
	"copy":  true,
}

func rewriteItemShortcutArgs(argv []string) []string {
	// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
	// before parsing. Persistent flags may come first (`listkeep --dir x add Milk`),
	// so look for the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--backend": true,
		"--key":     true,
		"--config":  true,
		"--format":  true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if itemVerbs[a] {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "items")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteItemShortcutArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
