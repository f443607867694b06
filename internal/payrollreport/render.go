package payrollreport

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Salaries"

var reportHeaders = []string{"No.", "Employee Code", "Name", "Email", "Month", "Year", "Base Salary", "Unpaid Leaves", "Leave Ded.", "Net Salary", "Generated At"}

func periodLabel(month string, year int) string {
	m := month
	if m == "" {
		m = "All Months"
	}
	if year == 0 {
		return m
	}
	return fmt.Sprintf("%s %d", m, year)
}

// pdfRow keeps a table row within pdfMaxLineChars at the report font size.
const pdfRow = "%-3s %-18s %-20s %-8s %11s %10s %6s %-10s"

func renderPDF(views []SalaryView, month string, year int, generatedAt time.Time) []byte {
	return buildReportPDF(reportLines(views, month, year, generatedAt))
}

func reportLines(views []SalaryView, month string, year int, generatedAt time.Time) []string {
	header := fmt.Sprintf(pdfRow, "No.", "Name", "Email", "Month", "Net Salary", "Leave Ded.", "Unpaid", "Generated")
	lines := []string{
		"Salary Report",
		"Period: " + periodLabel(month, year),
		"",
		header,
		strings.Repeat("-", len(header)),
	}
	for i, v := range views {
		lines = append(lines, fmt.Sprintf(pdfRow,
			truncate(fmt.Sprint(i+1), 3),
			truncate(v.EmployeeFullName, 18),
			truncate(v.Email, 20),
			truncate(fmt.Sprintf("%s %d", v.Month[:min(3, len(v.Month))], v.Year), 8),
			truncate(v.NetSalary.StringFixed(2), 11),
			truncate(v.LeaveDeduction.StringFixed(2), 10),
			fmt.Sprint(v.UnpaidLeaves),
			v.GeneratedAt.Format("2006-01-02"),
		))
	}
	return append(lines, "", "Report generated on "+generatedAt.Format("2006-01-02 15:04:05"))
}

func renderXLSX(views []SalaryView, month string, year int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(xlsxSheet, "A1", "Salary Report: "+periodLabel(month, year)); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(xlsxSheet, "A3", &reportHeaders); err != nil {
		return nil, err
	}
	for i, v := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return nil, err
		}
		row := []any{
			i + 1,
			v.EmployeeCode,
			v.EmployeeFullName,
			v.Email,
			v.Month,
			v.Year,
			v.BaseSalary.InexactFloat64(),
			v.UnpaidLeaves,
			v.LeaveDeduction.InexactFloat64(),
			v.NetSalary.InexactFloat64(),
			v.GeneratedAt.Format("2006-01-02"),
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}
