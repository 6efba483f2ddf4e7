package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"structdetect/domain/structured"
	"structdetect/internal/samples"
)

func main() {
	out := flag.String("out", "roster.xlsx", "output file path")
	typeName := flag.String("type", string(structured.TypeStudentRoster), "entity type: student_roster, class_schedule or lead_list")
	rows := flag.Int("rows", 25, "number of rows")
	format := flag.String("format", "", "output format: xlsx, csv or paste (default inferred from -out)")
	delimiter := flag.String("delimiter", "tab", "paste delimiter: tab, comma, pipe, semicolon or fixed-width")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	flag.Parse()

	entityType, err := structured.ParseEntityType(*typeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -type:", err)
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		switch strings.ToLower(filepath.Ext(*out)) {
		case ".csv":
			fmtName = "csv"
		case ".txt", ".tsv":
			fmtName = "paste"
		default:
			fmtName = "xlsx"
		}
	}

	ds, err := samples.Generate(samples.Config{Type: entityType, Rows: *rows, Seed: *seed})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating samples:", err)
		os.Exit(1)
	}

	switch fmtName {
	case "csv":
		err = samples.WriteCSV(*out, ds)
	case "xlsx":
		err = samples.WriteXLSX(*out, ds)
	case "paste":
		d, ok := delimiterByName(*delimiter)
		if !ok {
			fmt.Fprintln(os.Stderr, "unsupported delimiter:", *delimiter)
			os.Exit(2)
		}
		err = os.WriteFile(*out, []byte(ds.Paste(d)+"\n"), 0o644)
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error writing samples:", err)
		os.Exit(1)
	}

	fmt.Printf("Sample %s created: %s\n", entityType.Label(), *out)
	fmt.Printf("Total Columns: %d | Total Rows: %d\n", len(ds.Headers), len(ds.Rows))
}

func delimiterByName(name string) (structured.Delimiter, bool) {
	candidates := append(append([]structured.Delimiter(nil), structured.CandidateDelimiters...), structured.DelimiterFixedWidth)
	for _, d := range candidates {
		if d.Name() == name {
			return d, true
		}
	}
	return "", false
}
