package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportService struct {
	responses ResponseService
	logger    *slog.Logger
}

func NewExportService(responses ResponseService, logger *slog.Logger) ExportService {
	return &exportService{
		responses: responses,
		logger:    logger,
	}
}

// ExportResponses writes the review of a form as a workbook: one row per
// response, one column per question.
func (s *exportService) ExportResponses(ctx context.Context, formID string) (*ExportFile, error) {
	review, err := s.responses.Review(ctx, formID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Responses"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	// Write headers
	headers := []interface{}{"Response ID", "Submitted At"}
	for _, q := range review.Form.Questions {
		headers = append(headers, q.Title)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	// Write response data
	for i, r := range review.Responses {
		row := []interface{}{r.ResponseID, r.SubmittedAt.Format("2006-01-02 15:04:05")}
		for _, a := range r.Answers {
			row = append(row, a.Text())
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write response %s: %w", r.ResponseID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported responses", "form_id", formID, "rows", len(review.Responses))

	return &ExportFile{
		Filename:    fmt.Sprintf("form-%s-responses.xlsx", formID),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}
