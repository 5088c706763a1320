package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/shelfdb/shelfdb"
)

var cli struct {
	DB      string `short:"d" default:"shelf.db" help:"Path to the database file."`
	Verbose bool   `short:"v" help:"Log every mutation to stderr."`

	Insert struct {
		Key    string `arg:"" help:"Key to store the record under."`
		Record string `arg:"" help:"Record as a JSON object."`
	} `cmd:"" help:"Insert or overwrite a record."`
	New struct {
		Record string `arg:"" help:"Record as a JSON object."`
	} `cmd:"" help:"Insert a record under a freshly allocated numeric key and print the key."`
	Get struct {
		Key string `arg:"" help:"Key to look up."`
	} `cmd:"" help:"Print one record as JSON."`
	Update struct {
		Key    string `arg:"" help:"Key to update."`
		Record string `arg:"" help:"Partial record to merge, as a JSON object."`
	} `cmd:"" help:"Merge attributes into an existing record."`
	Delete struct {
		Key string `arg:"" help:"Key to delete."`
	} `cmd:"" help:"Delete a record."`
	Clear struct{} `cmd:"" help:"Remove all records."`
	Keys  struct{} `cmd:"" help:"List all keys."`
	Query struct {
		Where  []string `short:"w" help:"Condition in the form 'column op value' (ops: gt, eq, ne, ct, nct, wc, re), e.g. 'age gt 30'."`
		Select []string `short:"s" help:"Columns to project. Default: all columns."`
	} `cmd:"" help:"Query records and print the result as JSON."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("shelfdb"),
		kong.Description("Inspect and modify a shelfdb database file."),
	)
	if err := run(ctx.Command()); err != nil {
		fmt.Fprintf(os.Stderr, "shelfdb: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string) error {
	var opt shelfdb.Options
	if cli.Verbose {
		opt.Logf = log.New(os.Stderr, "", 0).Printf
	}
	db, err := shelfdb.Open(cli.DB, opt)
	if err != nil {
		return err
	}

	switch cmd {
	case "insert <key> <record>":
		rec, err := parseRecord(cli.Insert.Record)
		if err != nil {
			return err
		}
		return db.Insert(cli.Insert.Key, rec)

	case "new <record>":
		rec, err := parseRecord(cli.New.Record)
		if err != nil {
			return err
		}
		key, err := db.New(rec)
		if err != nil {
			return err
		}
		fmt.Println(key)
		return nil

	case "get <key>":
		rec, found, err := db.Get(cli.Get.Key)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no record under key %q", cli.Get.Key)
		}
		return printJSON(rec)

	case "update <key> <record>":
		partial, err := parseRecord(cli.Update.Record)
		if err != nil {
			return err
		}
		return db.Update(cli.Update.Key, partial)

	case "delete <key>":
		return db.Delete(cli.Delete.Key)

	case "clear":
		return db.Clear()

	case "keys":
		keys, err := db.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil

	case "query":
		preds := make([]shelfdb.Predicate, 0, len(cli.Query.Where))
		for _, w := range cli.Query.Where {
			p, err := parseWhere(w)
			if err != nil {
				return err
			}
			preds = append(preds, p)
		}
		result, err := db.Query(preds, cli.Query.Select)
		if err != nil {
			return err
		}
		return printJSON(result)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseRecord(s string) (shelfdb.Record, error) {
	var rec shelfdb.Record
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil, fmt.Errorf("record must be a JSON object: %w", err)
	}
	return rec, nil
}

// parseWhere turns "column op value" into a predicate. The value is parsed
// as JSON where possible, otherwise taken as a plain string; wc and re take
// the raw value as their pattern.
func parseWhere(w string) (shelfdb.Predicate, error) {
	parts := strings.SplitN(w, " ", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("condition %q must have the form 'column op value'", w)
	}
	col, op, raw := parts[0], parts[1], parts[2]

	switch op {
	case "wc":
		return shelfdb.Wildcard(col, raw), nil
	case "re":
		return shelfdb.Regex(col, raw), nil
	}

	var value shelfdb.Value
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = shelfdb.String(raw)
	}

	switch op {
	case "gt":
		return shelfdb.GreaterThan(col, value), nil
	case "eq":
		return shelfdb.Equals(col, value), nil
	case "ne":
		return shelfdb.NotEquals(col, value), nil
	case "ct":
		return shelfdb.Contains(col, value), nil
	case "nct":
		return shelfdb.NotContains(col, value), nil
	default:
		return nil, fmt.Errorf("unknown operator %q in condition %q", op, w)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
