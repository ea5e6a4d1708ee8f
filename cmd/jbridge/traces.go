package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/chazu/jbridge/manifest"
	"github.com/chazu/jbridge/trace"
)

// handleTraceCommand processes the `jbridge trace` subcommand.
// Usage:
//
//	jbridge trace list              List recorded sessions
//	jbridge trace show <session>    Print a session's calls and violations
//	jbridge trace rm <session>      Delete a session
func handleTraceCommand(args []string, m *manifest.Manifest) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: jbridge trace [list|show|rm] ...")
		fmt.Fprintln(os.Stderr, "  list            List recorded sessions")
		fmt.Fprintln(os.Stderr, "  show <session>  Print a session's calls and violations")
		fmt.Fprintln(os.Stderr, "  rm <session>    Delete a session")
		os.Exit(1)
	}

	store, err := trace.OpenStore(m.TraceDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch args[0] {
	case "list":
		err = listTraces(os.Stdout, store)
	case "show":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: jbridge trace show <session>")
			os.Exit(1)
		}
		err = showTrace(os.Stdout, store, args[1])
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: jbridge trace rm <session>")
			os.Exit(1)
		}
		err = store.Delete(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown trace subcommand: %s\n", args[0])
		os.Exit(1)
	}
	if err != nil {
		if errors.Is(err, trace.ErrSessionNotFound) {
			fmt.Fprintf(os.Stderr, "No trace session %s in %s\n", args[len(args)-1], store.Path())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func listTraces(w io.Writer, store *trace.Store) error {
	sums, err := store.List()
	if err != nil {
		return err
	}
	if len(sums) == 0 {
		fmt.Fprintf(w, "No trace sessions in %s\n", store.Path())
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tNAME\tSTARTED\tCALLS\tVIOLATIONS")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
			s.Session, s.Name, s.Started.Format(time.DateTime), s.Calls, s.Violations)
	}
	return tw.Flush()
}

func showTrace(w io.Writer, store *trace.Store, session string) error {
	l, err := store.Load(session)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "session %s (%s) started %s\n", l.Session, l.Name, l.Started().Format(time.RFC3339))
	for _, c := range l.Calls {
		fmt.Fprintln(w, c)
	}
	violations := trace.Verify(l)
	if len(violations) == 0 {
		fmt.Fprintln(w, "no violations")
		return nil
	}
	fmt.Fprintf(w, "%d violations:\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
	return nil
}
