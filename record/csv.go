// Copyright © 2025 The Gomon Project.

package record

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/zosmac/portmon/sampler"
)

// TimeLayout formats sample timestamps in the series file.
const TimeLayout = "2006-01-02 15:04:05.000000"

var (
	// seriesHeader names the columns of the series file.
	seriesHeader = []string{"Timestamp", "CPU_Usage_Percent", "Memory_Usage_MB"}
)

// WriteSeries writes the time series as CSV with a header row.
func WriteSeries(w io.Writer, ts sampler.TimeSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, sm := range ts {
		if err := cw.Write([]string{
			sm.Timestamp.Format(TimeLayout),
			strconv.FormatFloat(sm.CPUPercent, 'f', -1, 64),
			strconv.FormatFloat(sm.MemoryMB, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
