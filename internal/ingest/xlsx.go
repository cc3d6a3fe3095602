package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sales-insights-go/internal/types"
)

// LoadXLSX reads call records from a spreadsheet, detecting columns by
// header heuristics so exports from different CRMs still import.
func LoadXLSX(path string) ([]types.CallCreate, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	callIDIdx := -1
	agentIdx := -1
	customerIdx := -1
	startIdx := -1
	durationIdx := -1
	transcriptIdx := -1
	languageIdx := -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "transcript"):
			transcriptIdx = i
		case strings.Contains(l, "agent"):
			agentIdx = i
		case strings.Contains(l, "customer") || strings.Contains(l, "cust"):
			customerIdx = i
		case strings.Contains(l, "start") || strings.Contains(l, "date") || strings.Contains(l, "time"):
			if startIdx == -1 {
				startIdx = i
			}
		case strings.Contains(l, "duration") || strings.Contains(l, "seconds"):
			durationIdx = i
		case strings.Contains(l, "lang"):
			languageIdx = i
		case strings.Contains(l, "call id") || strings.Contains(l, "callid") || strings.Contains(l, "id"):
			if callIDIdx == -1 {
				callIDIdx = i
			}
		}
	}
	if transcriptIdx == -1 {
		return nil, fmt.Errorf("no transcript column detected")
	}

	cell := func(r []string, idx int) string {
		if idx >= 0 && idx < len(r) {
			return strings.TrimSpace(r[idx])
		}
		return ""
	}

	var out []types.CallCreate
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.CallCreate{
			CallID:     cell(r, callIDIdx),
			AgentID:    cell(r, agentIdx),
			CustomerID: cell(r, customerIdx),
			Language:   cell(r, languageIdx),
			Transcript: cell(r, transcriptIdx),
		}
		if rec.Transcript == "" {
			// skip empty rows quietly
			continue
		}
		if rec.CallID == "" {
			rec.CallID = fmt.Sprintf("CALL_XLSX_%06d", i)
		}
		if rec.Language == "" {
			rec.Language = "en"
		}
		rec.DurationSeconds, _ = strconv.Atoi(cell(r, durationIdx))
		rec.StartTime = parseStartTime(cell(r, startIdx))
		out = append(out, rec)
	}
	return out, nil
}

func parseStartTime(v string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "01/02/2006 15:04", "01/02/2006"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}
