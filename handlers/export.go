// handlers/export.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
)

// ExportBookingsToExcel exports all bookings as a styled xlsx download
// GET /api/v1/admin/export/bookings
func ExportBookingsToExcel(w http.ResponseWriter, r *http.Request) {
	var bookings []models.Booking
	err := config.DB.
		Preload("Job").
		Preload("Quote").
		Preload("Contractor").
		Preload("Customer").
		Order("scheduled_date DESC").
		Find(&bookings).Error
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	excelFile, err := createBookingsExcel(bookings)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := excelFile.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func createBookingsExcel(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Bookings"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Bookings Export")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	headers := []string{"Booking ID", "Job Title", "Customer", "Contractor", "Quoted Price", "Scheduled Date", "Status", "Created"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "D", 25)
	f.SetColWidth(sheetName, "E", "H", 18)

	for rowIdx := range bookings {
		dto := bookings[rowIdx].ToDTO()
		values := []interface{}{
			dto.ID.String(),
			dto.JobTitle,
			dto.CustomerName,
			dto.BusinessName,
			dto.QuotedPrice,
			dto.ScheduledDate.Format("2006-01-02"),
			string(dto.Status),
			dto.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// drop the default sheet excelize creates
	f.DeleteSheet("Sheet1")
	return f, nil
}
