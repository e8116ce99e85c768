package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/component-manager/dirio"
	"github.com/wippyai/component-manager/model"
	"github.com/wippyai/component-manager/moniker"
	"github.com/wippyai/component-manager/resolver"
	"github.com/wippyai/component-manager/runner"
)

func main() {
	var (
		storeDir    = flag.String("store", "", "Path to a local component store (one directory per component)")
		rootName    = flag.String("root", "root", "Name of the root component in the store")
		bindPath    = flag.String("bind", "/", "Moniker to bind, e.g. /shell/console")
		openPath    = flag.String("open", "", "Path to open in the bound instance's outgoing directory")
		runnerName  = flag.String("runner", "wasm", "Execution backend: wasm or log")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *storeDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: cm -store <dir> [-root name] [-bind /a/b] [-runner wasm|log]")
		fmt.Fprintln(os.Stderr, "       cm -store <dir> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		model.SetLogger(logger)
		resolver.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*storeDir, *rootName, *runnerName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*storeDir, *rootName, *bindPath, *openPath, *runnerName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(storeDir, rootName, bindPath, openPath, runnerName string) error {
	ctx := context.Background()

	m, cleanup, err := buildModel(ctx, storeDir, rootName, runnerName)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	target, err := moniker.Parse(bindPath)
	if err != nil {
		return err
	}

	if openPath != "" {
		realm, err := m.LookUpRealm(ctx, target)
		if err != nil {
			return err
		}
		_, server, err := dirio.NewEndpoints()
		if err != nil {
			return err
		}
		if err := m.BindInstanceAndOpen(ctx, realm, 0, 0, openPath, server); err != nil {
			return err
		}
	} else if err := m.LookUpAndBindInstance(ctx, target); err != nil {
		return err
	}

	printTree(os.Stdout, m.Root(), 0)
	return nil
}

// buildModel wires a model over a local store with the chosen backend.
// The cleanup function tears down runner resources.
func buildModel(ctx context.Context, storeDir, rootName, runnerName string) (*model.Model, func(context.Context), error) {
	reg := resolver.NewRegistry()
	reg.Register("pkg", resolver.NewLocal(os.DirFS(storeDir), "pkg", "store"))

	var (
		run     runner.Runner
		cleanup = func(context.Context) {}
	)
	switch runnerName {
	case "wasm":
		w := runner.NewWasm(ctx)
		run = w
		cleanup = func(ctx context.Context) { _ = w.Close(ctx) }
	case "log":
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, nil, err
		}
		run = runner.NewLog(logger)
	default:
		return nil, nil, fmt.Errorf("unknown runner %q (want wasm or log)", runnerName)
	}

	m := model.New(model.Options{
		RootURL:  "pkg://store/" + rootName,
		Registry: reg,
		Runner:   run,
	})
	return m, cleanup, nil
}

func printTree(w *os.File, realm *model.Realm, depth int) {
	status := "unresolved"
	if realm.Execution() != nil {
		status = "running"
	} else if realm.IsResolved() {
		status = "resolved"
		if d := realm.Declaration(); d != nil && !d.HasProgram() {
			status = "resolved (no program)"
		}
	}

	name := realm.Moniker().Leaf()
	if name == "" {
		name = "<root>"
	}
	fmt.Fprintf(w, "%s%-20s %-22s %s\n", strings.Repeat("  ", depth), name, status, realm.URL())

	kids := realm.Children()
	names := make([]string, 0, len(kids))
	for n := range kids {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		printTree(w, kids[n], depth+1)
	}
}
