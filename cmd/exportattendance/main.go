package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/attendance"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/communication"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/devops"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/filesystem"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

// exportattendance writes a month of attendance to an xlsx file, or to S3
// when export.bucket is configured.
func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	month := flag.String("month", "", "month to export as yyyy-MM, default: previous month")
	out := flag.String("out", "", "write to this file instead of S3")
	list := flag.Bool("list", false, "list archived exports and exit")
	flag.Parse()

	cfg, err := devops.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	ctx := context.Background()

	if *list {
		if cfg.Export.Bucket == "" {
			logging.Fatal().Msg("export.bucket is not configured")
		}
		keys, err := filesystem.ListFiles(ctx, cfg.Export.Bucket, cfg.Export.Prefix)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to list exports")
		}
		for _, key := range keys {
			fmt.Println(key)
		}
		return
	}

	if err := export(ctx, cfg, *month, *out); err != nil {
		if cfg.Notify.SlackToken != "" {
			slack := communication.NewSlack(cfg.Notify.SlackToken, communication.SlackOption{
				ErrorChannelID: cfg.Notify.SlackErrorChannel,
			})
			slack.ReportFailure(ctx, "attendance export", err)
		}
		logging.Fatal().Err(err).Msg("export failed")
	}
}

func export(ctx context.Context, cfg *devops.Config, month, out string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	target := attendance.PreviousMonth(time.Now(), loc)
	if month != "" {
		target, err = time.ParseInLocation("2006-01", month, loc)
		if err != nil {
			return fmt.Errorf("invalid month %q: %w", month, err)
		}
	}

	dm, err := cfg.OpenDatabase(ctx)
	if err != nil {
		return err
	}
	defer dm.Close()

	exporter := attendance.NewExporter(attendance.NewLedger(dm, loc))

	if out == "" && cfg.Export.Bucket != "" {
		key, count, err := attendance.NewArchiver(exporter, cfg.Export.Bucket, cfg.Export.Prefix).ArchiveMonth(ctx, target)
		if err != nil {
			return err
		}
		logging.Info().Int("records", count).Str("bucket", cfg.Export.Bucket).Str("key", key).Msg("export uploaded")
		return nil
	}

	if out == "" {
		out = attendance.MonthFileName(target)
	}
	from, to := utils.MonthWindow(target, loc)
	var buf bytes.Buffer
	count, err := exporter.WriteWorkbook(ctx, &buf, from, to)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return err
	}
	logging.Info().Int("records", count).Str("file", out).Msg("export written")
	return nil
}
