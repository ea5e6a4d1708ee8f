// jbridge CLI - inspect the marshalling layer and exercise it against the
// built-in VM
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/manifest"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output (debug logging)")
	dir := flag.String("C", ".", "Directory to start the jbridge.toml search from")
	record := flag.Bool("trace", false, "Record demo runs even if [trace].enabled is false")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jbridge [options] <command> [args...]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  sigs                  Print the type descriptor table\n")
		fmt.Fprintf(os.Stderr, "  demo [scenario...]    Run demo scenarios against the built-in VM\n")
		fmt.Fprintf(os.Stderr, "  trace list            List recorded trace sessions\n")
		fmt.Fprintf(os.Stderr, "  trace show <session>  Print a recorded session and its violations\n")
		fmt.Fprintf(os.Stderr, "  trace rm <session>    Delete a recorded session\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jbridge sigs\n")
		fmt.Fprintf(os.Stderr, "  jbridge -trace demo exception\n")
		fmt.Fprintf(os.Stderr, "  jbridge trace list\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	}
	if *verbose {
		m.Logging.Verbosity = 2
	}
	if *record {
		m.Trace.Enabled = true
	}
	m.Apply()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	switch args[0] {
	case "sigs":
		printDescriptors()
	case "demo":
		if err := runDemo(os.Stdout, os.Stderr, m, args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "trace":
		handleTraceCommand(args[1:], m)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(2)
	}
}

func printDescriptors() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSIGNATURE\tCALL\tFIELD")
	for _, d := range jni.Descriptors() {
		acc := accessor(d.Kind)
		field := "-"
		if d.GetField != nil {
			field = "Get" + acc + "Field"
		}
		fmt.Fprintf(w, "%s\t%s\tCall%sMethodA\t%s\n", d.Kind, d.Signature, acc, field)
	}
	w.Flush()
}

// accessor names the entry-point family a kind dispatches to.
func accessor(k jni.Kind) string {
	if k.IsRef() {
		return "Object"
	}
	name := k.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
