// Command gessodebug inspects a process running a gesso debug server.
//
// Usage:
//
//	gessodebug [-socket path] [-json] [command [args...]]
//
// Without a command it reads commands from standard input, one per line.
// Commands are method names (scene.stats, debug.draw_quad, ...) optionally
// followed by a JSON params object, or one of the short forms:
//
//	stats
//	quads
//	list
//	clear
//	remove ID
//	draw X Y W H [R G B A]
//	screenshot PATH [WIDTH HEIGHT]
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gogpu/gesso/debug"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gessodebug", flag.ContinueOnError)
	fs.SetOutput(stderr)
	socket := fs.String("socket", "", "server socket (default: newest in "+debug.SocketDir+")")
	jsonOut := fs.Bool("json", false, "print raw JSON results")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var (
		client *debug.Client
		err    error
	)
	if *socket != "" {
		client, err = debug.Dial(*socket)
	} else {
		client, err = debug.Discover()
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	p := printer{out: stdout, errOut: stderr, json: *jsonOut}

	if fs.NArg() > 0 {
		if err := execute(client, strings.Join(fs.Args(), " "), p); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	interactive := false
	if f, ok := stdin.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return repl(client, stdin, p, interactive)
}

func repl(client *debug.Client, in io.Reader, p printer, interactive bool) int {
	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(p.errOut, "gesso> ")
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Fprintln(p.errOut)
			}
			return 0
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return 0
		}

		if err := execute(client, line, p); err != nil {
			fmt.Fprintf(p.errOut, "error: %v\n", err)
			// Request and usage errors leave the connection usable.
			var rpcErr *debug.Error
			if !errors.As(err, &rpcErr) && !errors.Is(err, errUsage) {
				return 1
			}
		}
	}
}

func execute(client *debug.Client, line string, p printer) error {
	method, params, err := parseCommand(line)
	if err != nil {
		return err
	}
	result, err := client.Call(method, params)
	if err != nil {
		return err
	}
	return p.print(method, result)
}

var errUsage = errors.New("usage")

// parseCommand turns one command line into a method and its params.
func parseCommand(line string) (string, any, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%w: empty command", errUsage)
	}
	name, rest := fields[0], fields[1:]

	if len(rest) > 0 && strings.HasPrefix(rest[0], "{") {
		raw := json.RawMessage(strings.TrimSpace(strings.TrimPrefix(line, name)))
		if !json.Valid(raw) {
			return "", nil, fmt.Errorf("%w: params are not valid JSON", errUsage)
		}
		return expand(name), raw, nil
	}

	switch name {
	case "stats", "quads", "list", "clear":
		return expand(name), nil, nil
	case "remove":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("%w: remove ID", errUsage)
		}
		var id uint64
		if _, err := fmt.Sscan(rest[0], &id); err != nil {
			return "", nil, fmt.Errorf("%w: remove ID: %v", errUsage, err)
		}
		return debug.MethodRemove, map[string]uint64{"id": id}, nil
	case "draw":
		nums, err := parseFloats(rest)
		if err != nil || (len(nums) != 4 && len(nums) != 8) {
			return "", nil, fmt.Errorf("%w: draw X Y W H [R G B A]", errUsage)
		}
		params := map[string]any{"x": nums[0], "y": nums[1], "w": nums[2], "h": nums[3]}
		if len(nums) == 8 {
			params["color"] = nums[4:]
		}
		return debug.MethodDrawQuad, params, nil
	case "screenshot":
		sp := debug.ScreenshotParams{}
		switch len(rest) {
		case 1:
		case 3:
			if _, err := fmt.Sscan(rest[1]+" "+rest[2], &sp.Width, &sp.Height); err != nil {
				return "", nil, fmt.Errorf("%w: screenshot PATH [WIDTH HEIGHT]", errUsage)
			}
		default:
			return "", nil, fmt.Errorf("%w: screenshot PATH [WIDTH HEIGHT]", errUsage)
		}
		sp.Path = rest[0]
		return debug.MethodScreenshot, sp, nil
	}
	if len(rest) > 0 {
		return "", nil, fmt.Errorf("%w: %s takes a JSON params object", errUsage, name)
	}
	return name, nil, nil
}

func expand(name string) string {
	switch name {
	case "stats":
		return debug.MethodStats
	case "quads":
		return debug.MethodQuads
	case "list":
		return debug.MethodList
	case "clear":
		return debug.MethodClear
	case "remove":
		return debug.MethodRemove
	case "draw":
		return debug.MethodDrawQuad
	case "screenshot":
		return debug.MethodScreenshot
	}
	return name
}

func parseFloats(s []string) ([]float32, error) {
	out := make([]float32, len(s))
	for i, v := range s {
		if _, err := fmt.Sscan(v, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
