package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/attendance"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/communication"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/devops"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
)

// ExportEvent is the scheduled payload. Month is yyyy-MM; empty means the
// previous month.
type ExportEvent struct {
	Month string `json:"month"`
}

type ExportResult struct {
	Bucket  string `json:"bucket"`
	Key     string `json:"key"`
	Records int    `json:"records"`
}

func Export(ctx context.Context, cfg *devops.Config, event ExportEvent) (*ExportResult, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	month := attendance.PreviousMonth(time.Now(), loc)
	if event.Month != "" {
		month, err = time.ParseInLocation("2006-01", event.Month, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", event.Month, err)
		}
	}

	dm, err := cfg.OpenDatabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer dm.Close()

	exporter := attendance.NewExporter(attendance.NewLedger(dm, loc))
	key, count, err := attendance.NewArchiver(exporter, cfg.Export.Bucket, cfg.Export.Prefix).ArchiveMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Bucket: cfg.Export.Bucket, Key: key, Records: count}, nil
}

// Lambda handler function
func HandleRequest(ctx context.Context, event ExportEvent) (*ExportResult, error) {
	cfg, err := devops.LoadConfig("")
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	result, err := Export(ctx, cfg, event)
	if err != nil {
		logging.Error().Err(err).Str("month", event.Month).Msg("attendance export failed")
		if cfg.Notify.SlackToken != "" {
			slack := communication.NewSlack(cfg.Notify.SlackToken, communication.SlackOption{
				ErrorChannelID: cfg.Notify.SlackErrorChannel,
			})
			slack.ReportFailure(ctx, "attendance export", err)
		}
		return nil, err
	}

	logging.Info().Str("key", result.Key).Int("records", result.Records).Msg("attendance export archived")
	return result, nil
}

func main() {
	lambda.Start(HandleRequest)
}
