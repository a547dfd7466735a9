package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/lexserve/backoffice/internal/application/service"
	"github.com/lexserve/backoffice/internal/domain/entity"
)

func TestLedgerExporter_WriteLedger(t *testing.T) {
	exporter := NewLedgerExporter(zap.NewNop())

	ledgers := []*service.LawyerLedger{
		{
			Lawyer:            &entity.Lawyer{ID: 1, Name: "Adams", Email: "adams@example.com"},
			TotalCases:        3,
			TotalUnpaidCases:  2,
			TotalUnpaidAmount: 5000,
		},
		{
			Lawyer:            &entity.Lawyer{ID: 2, Name: "Baker"},
			TotalCases:        1,
			TotalUnpaidCases:  1,
			TotalUnpaidAmount: 2500,
		},
	}

	buf, err := exporter.WriteLedger(ledgers)
	require.NoError(t, err)
	require.NotNil(t, buf)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Lawyer Ledger")

	header, err := f.GetCellValue("Lawyer Ledger", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Lawyer ID", header)

	name, err := f.GetCellValue("Lawyer Ledger", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Adams", name)

	unpaid, err := f.GetCellValue("Lawyer Ledger", "F2")
	require.NoError(t, err)
	assert.Equal(t, "5000", unpaid)

	// Totals row follows the last lawyer
	label, err := f.GetCellValue("Lawyer Ledger", "A4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)

	totalUnpaid, err := f.GetCellValue("Lawyer Ledger", "F4")
	require.NoError(t, err)
	assert.Equal(t, "7500", totalUnpaid)
}

func TestLedgerExporter_WriteLedger_Empty(t *testing.T) {
	exporter := NewLedgerExporter(zap.NewNop())

	buf, err := exporter.WriteLedger(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	label, err := f.GetCellValue("Lawyer Ledger", "A2")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)
}

func TestLedgerExporter_Filename(t *testing.T) {
	exporter := NewLedgerExporter(zap.NewNop())

	name := exporter.Filename()
	assert.Regexp(t, `^lawyer_ledger_\d{8}_\d{6}\.xlsx$`, name)
}
