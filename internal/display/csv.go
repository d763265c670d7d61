package display

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"MoonSentinel/internal/model"
)

// WriteCSV writes the aligned records as CSV with a header row.
func WriteCSV(w io.Writer, records []model.AlignedRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"date", "close", "illumination", "is_full_moon"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Close.String(),
			strconv.FormatFloat(r.Illumination, 'f', 4, 64),
			strconv.FormatBool(r.IsFullMoon),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the aligned records to path.
func WriteCSVFile(path string, records []model.AlignedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
