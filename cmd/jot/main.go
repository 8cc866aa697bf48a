// Package main is jot, a command line validator and reformatter for JSON
// documents: it reads a document from a file or stdin, decodes it and
// prints it back compact or indented.
package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"
	"go-simpler.org/env"

	jot "jot.mleku.dev"
	"jot.mleku.dev/chk"
	"jot.mleku.dev/log"
	"jot.mleku.dev/lol"
	"jot.mleku.dev/slurp"
	"jot.mleku.dev/thing"
	"jot.mleku.dev/trace"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" default:"info" usage:"log level: fatal error warn info debug trace"`
	MaxSize  int    `env:"MAX_SIZE" default:"16777216" usage:"input size cap in bytes"`
}

var args struct {
	File    string `arg:"positional" help:"input file; - or nothing reads stdin"`
	Compact bool   `arg:"-c,--compact" help:"emit the document on one line"`
	Indent  int    `arg:"-i,--indent" default:"2" help:"spaces per nesting level"`
	Margin  int    `arg:"-m,--margin" default:"0" help:"left margin spaces"`
	Check   bool   `arg:"--check" help:"validate only, print nothing"`
	Pprof   bool   `arg:"--pprof" help:"write a cpu profile to the working directory"`
	Env     bool   `arg:"--env" help:"list the environment variables and exit"`
	Version bool   `arg:"--version" help:"print version and exit"`
}

func fail(format string, a ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}

func main() {
	arg.MustParse(&args)
	if args.Version {
		fmt.Printf("%s %s\n", jot.URL, jot.Version)
		return
	}
	cfg := &Config{}
	if args.Env {
		fmt.Printf("environment variables that configure jot:\n\n")
		env.Usage(cfg, os.Stdout, nil)
		return
	}
	var err error
	if err = env.Load(cfg, nil); chk.E(err) {
		fail(err.Error())
	}
	lol.SetLogLevel(cfg.LogLevel)
	if args.Pprof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	var t *thing.T
	if args.File == "" || args.File == "-" {
		t, err = slurp.Decode(os.Stdin, cfg.MaxSize)
	} else {
		t, err = slurp.File(args.File, cfg.MaxSize)
	}
	if err != nil {
		fail("invalid document: %s", err.Error())
	}
	log.D.C(func() string { return "decoded " + trace.String(t) })
	if args.Check {
		return
	}
	var b []byte
	if args.Compact {
		b = t.Marshal(nil)
	} else {
		b = t.MarshalIndented(nil, args.Margin, args.Indent)
	}
	b = append(b, '\n')
	if _, err = os.Stdout.Write(b); chk.E(err) {
		fail(err.Error())
	}
}
