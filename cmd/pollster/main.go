// pollster - Political Party Affiliation Predictor
//
// Asks ten multiple-choice questions on stdin/stdout and predicts a
// party from the answers. Tallies accumulate across runs in per-party
// text files or, with --db, in a SQLite database.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/taigrr/mugshot/pkg/quiz"
)

var (
	dbPath    = flag.String("db", "", "SQLite database file (empty: flat text files)")
	tallyDir  = flag.String("dir", ".", "Directory for the flat tally files")
	showTally = flag.Bool("show-tally", false, "Print accumulated counts and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pollster - Political Party Affiliation Predictor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pollster [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var store quiz.Store
	if *dbPath != "" {
		s, err := quiz.OpenSQL(*dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	} else {
		store = quiz.FileStore{Dir: *tallyDir}
	}

	if *showTally {
		totals, err := store.Totals()
		if err != nil {
			return err
		}
		for _, p := range quiz.Parties {
			fmt.Printf("%s: %d\n", p, totals[p])
		}
		return nil
	}

	tally, err := quiz.Run(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if err := store.Record(tally); err != nil {
		return err
	}
	fmt.Printf("Predicted Political Party: %s\n", tally.Predict())
	return nil
}
