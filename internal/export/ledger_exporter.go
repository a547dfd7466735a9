// Package export renders compensation data to spreadsheet files for the
// accounting team.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lexserve/backoffice/internal/application/service"
)

const ledgerSheetName = "Lawyer Ledger"

// LedgerExporter writes compensation ledgers as Excel workbooks
type LedgerExporter struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewLedgerExporter creates a new ledger exporter
func NewLedgerExporter(logger *zap.Logger) *LedgerExporter {
	return &LedgerExporter{
		logger: logger,
		now:    time.Now,
	}
}

// WriteLedger renders one row per lawyer plus a totals row and returns the
// workbook as a buffer ready to be streamed to the client.
func (le *LedgerExporter) WriteLedger(ledgers []*service.LawyerLedger) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(ledgerSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		le.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}

	headers := []string{"Lawyer ID", "Name", "Email", "Total Cases", "Unpaid Cases", "Unpaid Amount"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve header cell: %w", err)
		}
		le.setCell(f, cell, header)
	}

	var totalUnpaidCases int
	var totalUnpaidAmount int64
	for i, ledger := range ledgers {
		row := i + 2
		le.setCell(f, fmt.Sprintf("A%d", row), ledger.Lawyer.ID)
		le.setCell(f, fmt.Sprintf("B%d", row), ledger.Lawyer.Name)
		le.setCell(f, fmt.Sprintf("C%d", row), ledger.Lawyer.Email)
		le.setCell(f, fmt.Sprintf("D%d", row), ledger.TotalCases)
		le.setCell(f, fmt.Sprintf("E%d", row), ledger.TotalUnpaidCases)
		le.setCell(f, fmt.Sprintf("F%d", row), ledger.TotalUnpaidAmount)

		totalUnpaidCases += ledger.TotalUnpaidCases
		totalUnpaidAmount += ledger.TotalUnpaidAmount
	}

	totalsRow := len(ledgers) + 2
	le.setCell(f, fmt.Sprintf("A%d", totalsRow), "TOTAL")
	le.setCell(f, fmt.Sprintf("E%d", totalsRow), totalUnpaidCases)
	le.setCell(f, fmt.Sprintf("F%d", totalsRow), totalUnpaidAmount)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	le.logger.Info("Ledger exported",
		zap.Int("lawyers", len(ledgers)),
		zap.Int64("total_unpaid_amount", totalUnpaidAmount))

	return buf, nil
}

// Filename returns the suggested download name for an export generated now
func (le *LedgerExporter) Filename() string {
	return fmt.Sprintf("lawyer_ledger_%s.xlsx", le.now().UTC().Format("20060102_150405"))
}

// setCell sets a cell value on the ledger sheet
func (le *LedgerExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(ledgerSheetName, cell, value); err != nil {
		le.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
