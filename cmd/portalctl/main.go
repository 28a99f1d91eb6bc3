// Command portalctl inspects the portal's tables from a terminal.
//
//	portalctl dump <table>    print a table as decoded records
//	portalctl events          print events with registration counts
//	portalctl init-postgres   create the postgres-backed tables with their headers
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	eventrepo "github.com/ovaphlow/pitchfork/service-engagement/internal/event/repo"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/identity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/tables"
)

func main() {
	_ = godotenv.Load()

	flag.Usage = usage
	driver := flag.String("driver", "", "store driver, overrides STORE_DRIVER")
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg := sheet.ConfigFromEnv()
	if *driver != "" {
		cfg.Driver = *driver
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := run(ctx, cfg, flag.Args(), os.Stdout); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: portalctl [-driver sheets|postgres|memory] dump <table> | events | init-postgres")
	flag.PrintDefaults()
}

func run(ctx context.Context, cfg sheet.Config, args []string, out io.Writer) error {
	switch args[0] {
	case "dump":
		if len(args) < 2 {
			return fmt.Errorf("dump needs a table name, one of %v", tables.Names)
		}
		store, closeStore, err := sheet.Open(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()
		return dump(ctx, store, args[1], out)
	case "events":
		store, closeStore, err := sheet.Open(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer closeStore()
		return events(ctx, store, out)
	case "init-postgres":
		cfg.Driver = "postgres"
		_, closeStore, err := sheet.Open(ctx, cfg, tables.Layout())
		if err != nil {
			return err
		}
		defer closeStore()
		color.Green("provisioned %d tables", len(tables.Names))
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func dump(ctx context.Context, store sheet.Store, name string, out io.Writer) error {
	grid, err := store.ReadTable(ctx, name)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		color.Yellow("%s is empty", name)
		return nil
	}
	header := grid[0]
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	for _, rec := range sheet.Decode(grid) {
		table.Append(sheet.Encode(rec, header))
	}
	table.Render()
	color.Cyan("%d rows", len(grid)-1)
	return nil
}

func events(ctx context.Context, store sheet.Store, out io.Writer) error {
	list, err := eventrepo.NewEventRepo(store, zap.NewNop().Sugar()).List(ctx, identity.Anonymous)
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Event ID", "Name", "Date", "Capacity", "Registered"})
	for _, ev := range list {
		table.Append([]string{
			ev.EventID,
			ev.EventName,
			ev.EventDate,
			strconv.Itoa(ev.Capacity),
			strconv.Itoa(ev.RegisteredCount),
		})
	}
	table.Render()
	return nil
}
