// Command extract converts one or all ranking source CSVs into their
// JSON and embeddable-script artifact pairs, then exits.
//
//	extract abs --in ABS-2024.csv [--out-dir .]
//	extract core [--in full_CORE.csv] [--out-dir .]
//	extract sjr [--in "scimagojr 2024.csv"] [--out-dir .]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/openranks/rankings-api/export"
	"github.com/openranks/rankings-api/rankingsparser"
	"github.com/openranks/rankings-api/rankingsparser/entities"
	"github.com/openranks/rankings-api/validation"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "abs":
		fs := flag.NewFlagSet("abs", flag.ExitOnError)
		in := fs.String("in", "", "ABS journal list CSV")
		outDir := fs.String("out-dir", ".", "output directory")
		_ = fs.Parse(os.Args[2:])
		if *in == "" {
			fmt.Println("!!! Filename not provided. Run with --in, e.g. extract abs --in ABS-2024.csv")
			os.Exit(1)
		}
		table := run(*in, rankingsparser.ABSSource())
		must(export.WritePair(table, export.ABSNames, *outDir))
		fmt.Printf("%d journals added\n", table.Len())
		printSample(table)
	case "core":
		fs := flag.NewFlagSet("core", flag.ExitOnError)
		in := fs.String("in", "full_CORE.csv", "full CORE conference export CSV")
		outDir := fs.String("out-dir", ".", "output directory")
		_ = fs.Parse(os.Args[2:])
		table := run(*in, rankingsparser.CORESource())
		must(export.WritePair(table, export.CoreNames, *outDir))
		fmt.Printf("Total conferences extracted: %d\n", table.Len())
		printDistribution(table)
		printSample(table)
	case "sjr":
		fs := flag.NewFlagSet("sjr", flag.ExitOnError)
		in := fs.String("in", "scimagojr 2024.csv", "SCImago journal export CSV")
		outDir := fs.String("out-dir", ".", "output directory")
		_ = fs.Parse(os.Args[2:])
		table := run(*in, rankingsparser.SJRSource())
		must(export.WritePair(table, export.SJRNames, *outDir))
		fmt.Printf("Found %d journals with SJR rankings\n", table.Len())
		printSample(table)
	default:
		usage()
		os.Exit(1)
	}
}

// run checks that the source exists, then extracts it. A missing source is
// the only pre-extraction abort; everything else is row-scoped.
func run[V entities.Value](path string, src rankingsparser.Source[V]) *entities.Table[V] {
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("!!! Import file does not exist: %s\n", path)
		os.Exit(1)
	}

	fmt.Printf("Extracting %s rankings from %s...\n", src.Name, path)
	table, stats, err := rankingsparser.ExtractFile(path, src)
	must(err)

	if stats.Malformed > 0 || stats.Excluded > 0 || stats.EmptyTitle > 0 {
		fmt.Printf("Skipped rows: malformed=%d excluded=%d empty_title=%d\n",
			stats.Malformed, stats.Excluded, stats.EmptyTitle)
	}
	return table
}

func printDistribution(table *entities.Table[entities.ConferenceRank]) {
	counts := validation.RankDistribution(table)
	fmt.Println("\nRanking distribution:")
	for _, rank := range []string{"A*", "A", "B", "C", "Au", "Nat", "TBR"} {
		if counts[rank] > 0 {
			fmt.Printf("  %s: %d\n", rank, counts[rank])
		}
	}
}

func printSample[V entities.Value](table *entities.Table[V]) {
	keys := table.Keys()
	if len(keys) > 5 {
		keys = keys[:5]
	}

	fmt.Println("\nSample entries:")
	for _, key := range keys {
		value, _ := table.Get(key)
		fmt.Printf("  %s: %s\n", key, value.ScriptValue())
	}
}

func usage() {
	fmt.Println("usage: extract <source> [flags]")
	fmt.Println("sources:")
	fmt.Println("  abs  --in <file> [--out-dir DIR]")
	fmt.Println("  core [--in full_CORE.csv] [--out-dir DIR]")
	fmt.Println("  sjr  [--in \"scimagojr 2024.csv\"] [--out-dir DIR]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
