package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/js-runtime/dispatch"
	"github.com/wippyai/js-runtime/engine"
)

func main() {
	var (
		expr    = flag.String("e", "", "Evaluate expression and exit")
		name    = flag.String("name", "repl", "Engine name for diagnostics")
		verbose = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if err := run(*expr, *name, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(expr, name string, verbose bool) error {
	ctx := context.Background()

	if verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		engine.SetLogger(log)
		dispatch.SetLogger(log)
	}

	// The channel is the only way anything below touches the engine: the
	// TUI goroutine, stdin mode, and -e mode all dispatch closures to the
	// engine goroutine and join the result.
	var ch *dispatch.Channel
	eng, err := engine.Start(ctx, func(access *engine.Access) error {
		ch = dispatch.New(access)
		return installConsole(access)
	}, engine.WithName(name))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = eng.Close(closeCtx)
	}()

	if expr != "" {
		return evalAndPrint(ch, expr)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return evalAndPrint(ch, string(src))
	}

	return runInteractive(ch)
}

// evaluate runs src on the engine goroutine and renders the result.
func evaluate(ch *dispatch.Channel, src string) (string, error) {
	handle, err := dispatch.TrySend(ch, func(access *engine.Access) (string, error) {
		v, err := access.Runtime().RunString(src)
		if err != nil {
			return "", err
		}
		return render(v), nil
	})
	if err != nil {
		return "", err
	}
	return handle.Join()
}

func evalAndPrint(ch *dispatch.Channel, src string) error {
	out, err := evaluate(ch, src)
	if err != nil {
		var je *dispatch.JoinError
		if stderrors.As(err, &je) && je.Thrown() {
			return fmt.Errorf("uncaught exception: %w", je.Unwrap())
		}
		return err
	}
	fmt.Println(out)
	return nil
}

func render(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}

// installConsole wires a minimal console.log into the runtime. Runs on
// the engine goroutine during setup.
func installConsole(access *engine.Access) error {
	vm := access.Runtime()
	console := vm.NewObject()
	if err := console.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, 0, len(call.Arguments))
		for _, arg := range call.Arguments {
			parts = append(parts, arg.String())
		}
		fmt.Println(strings.Join(parts, " "))
		return goja.Undefined()
	}); err != nil {
		return err
	}
	return vm.Set("console", console)
}
