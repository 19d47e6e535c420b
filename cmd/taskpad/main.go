package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/taskpad/internal/cli"
	"github.com/Makepad-fr/taskpad/internal/config"
	"github.com/Makepad-fr/taskpad/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	file := flag.String("file", "", "task data file (default ~/.taskpad/tasks.json)")
	filter := flag.String("filter", "all", "list filter: all, pending, completed, high, medium, low")
	search := flag.String("search", "", "list search text")
	theme := flag.String("theme", "", "color theme: classic, neon, mono")
	noColor := flag.Bool("no-color", false, "disable ANSI colors")
	groupPending := flag.Bool("group", false, "group list output by pending/done")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}

	if *noColor || cfg.NoColor {
		ui.SetColorForcing(false, true)
	}
	switch {
	case *theme != "":
		ui.SetTheme(*theme)
	case cfg.Theme != "":
		ui.SetTheme(cfg.Theme)
	}

	dataFile, err := cfg.ResolveDataFile(*file)
	if err != nil {
		ui.Fail("config: " + err.Error())
		os.Exit(1)
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		File:   dataFile,
		Filter: *filter,
		Search: *search,
		Group:  *groupPending,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
