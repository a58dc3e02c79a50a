package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mgarton/parsec/examples/calc"
)

// ANSI color codes for terminal output
const (
	colorReset = "\033[0m"
	colorRed   = "\033[1;31m"
	colorGray  = "\033[0;37m"
)

type args struct {
	showTokens  *bool
	showAST     *bool
	interactive *bool
}

func readArgs() *args {
	a := &args{
		showTokens:  flag.Bool("tokens", false, "Print the token stream instead of evaluating"),
		showAST:     flag.Bool("ast", false, "Print the parsed expression tree instead of evaluating"),
		interactive: flag.Bool("i", false, "Read expressions from stdin, one per line"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()

	if *a.interactive {
		repl(a)
		return
	}

	expr := strings.Join(flag.Args(), " ")
	if expr == "" {
		fmt.Fprintf(os.Stderr, "Usage: parsecalc [-tokens] [-ast] [-i] EXPRESSION\n")
		os.Exit(1)
	}
	if !run(a, "<args>", expr) {
		os.Exit(1)
	}
}

func repl(a *args) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("calc> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		run(a, "<stdin>", line)
	}
}

func run(a *args, name, source string) bool {
	if *a.showTokens {
		tokens, err := calc.Tokenize(name, source)
		if err != nil {
			printError(err)
			return false
		}
		for _, t := range tokens {
			fmt.Printf("%s%s%s %s\n", colorGray, t.Span, colorReset, t.Text)
		}
		return true
	}

	expr, err := calc.Parse(name, source)
	if err != nil {
		printError(err)
		return false
	}
	if *a.showAST {
		fmt.Println(expr)
		return true
	}
	v, err := expr.Eval()
	if err != nil {
		printError(err)
		return false
	}
	fmt.Println(v)
	return true
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%serror:%s %s\n", colorRed, colorReset, err.Error())
}
