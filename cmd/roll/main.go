// Package main provides a one-shot command line dice roller.
//
// Usage:
//
//	roll [-seed N] [-n COUNT] <notation>...
//
// Each notation argument is compiled and rolled COUNT times. With -seed the
// deterministic source is used, making output reproducible.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dicebox/internal/dice"
)

func main() {
	seed := flag.Int64("seed", 0, "seed for deterministic rolls (0 = system randomness)")
	count := flag.Int("n", 1, "number of rolls per notation")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: roll [-seed N] [-n COUNT] <notation>...")
		os.Exit(2)
	}
	if *count < 1 {
		log.Fatalf("invalid roll count %d", *count)
	}

	var src dice.Source
	if *seed != 0 {
		src = dice.NewSeededSource(*seed)
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewRoller(src, zap.NewNop())

	for _, notation := range flag.Args() {
		rule := dice.Compile(notation)
		if rule.Len() == 0 {
			log.Fatalf("unrecognized notation %q", notation)
		}

		results := make([]string, *count)
		for i := range results {
			results[i] = fmt.Sprintf("%d", roller.RollRule(rule))
		}
		fmt.Printf("%s: %s\n", rule.Text(), strings.Join(results, " "))
	}
}
