package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/infrastructure/filesystem"
	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/utils"
)

type UploadFunc func(ctx context.Context, bucket, key, contentType string, body io.Reader) error

// Archiver stores monthly workbooks under Prefix in Bucket.
type Archiver struct {
	Exporter *Exporter
	Bucket   string
	Prefix   string
	Upload   UploadFunc
}

func NewArchiver(exporter *Exporter, bucket, prefix string) *Archiver {
	return &Archiver{Exporter: exporter, Bucket: bucket, Prefix: prefix, Upload: filesystem.WriteFile}
}

// MonthFileName is the workbook name for the month containing t.
func MonthFileName(t time.Time) string {
	return fmt.Sprintf("attendance-%s.xlsx", t.Format("2006-01"))
}

// ArchiveMonth uploads the workbook for the month containing month and
// returns the object key and the number of rows written.
func (a *Archiver) ArchiveMonth(ctx context.Context, month time.Time) (string, int, error) {
	if a.Bucket == "" {
		return "", 0, fmt.Errorf("export bucket is not configured")
	}
	from, to := utils.MonthWindow(month, a.Exporter.ledger.loc)

	var buf bytes.Buffer
	count, err := a.Exporter.WriteWorkbook(ctx, &buf, from, to)
	if err != nil {
		return "", 0, err
	}

	key := path.Join(a.Prefix, MonthFileName(from))
	if err := a.Upload(ctx, a.Bucket, key, WorkbookContentType, &buf); err != nil {
		return "", 0, err
	}
	return key, count, nil
}

// PreviousMonth returns the first day of the month before now in loc.
func PreviousMonth(now time.Time, loc *time.Location) time.Time {
	start, _ := utils.MonthWindow(now, loc)
	return start.AddDate(0, -1, 0)
}
