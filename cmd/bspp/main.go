package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sansecio/bspp"
	"github.com/sansecio/bspp/env"
)

// defines accumulates repeated -D name=value flags.
type defines map[string]string

func (d defines) String() string {
	pairs := make([]string, 0, len(d))
	for name, value := range d {
		pairs = append(pairs, name+"="+value)
	}
	return strings.Join(pairs, ",")
}

func (d defines) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	d[name] = value
	return nil
}

func main() {
	overrides := defines{}
	list := flag.Bool("list-conditionals", false, "print every conditional variable and exit")
	out := flag.String("o", "", "write output to file instead of stdout")
	flag.Var(overrides, "D", "define a conditional variable as name=value (repeatable)")
	flag.Parse()

	e := env.New(env.Builtins(), overrides)

	if *list {
		for _, b := range e.Dump() {
			fmt.Printf("%s\t%s\t%s\n", b.Name, b.Type, b.Raw)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: bspp [-D name=value]... [-list-conditionals] [-o out] <file>\n")
		os.Exit(1)
	}

	path := flag.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	res, err := bspp.Process(path, string(src), e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(res), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	os.Stdout.WriteString(res)
}
