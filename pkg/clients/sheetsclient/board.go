package sheetsclient

import (
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

// PublishBoard writes the board rows to the tab named tabTitle.
// The tab is created if it does not exist and overwritten if it does.
func (c *Client) PublishBoard(spreadsheetID, tabTitle string, rows [][]string) error {
	exists, err := c.SheetExists(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if exists {
		if err := c.ClearSheet(spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
		return fmt.Errorf("failed to create tab: %w", err)
	}

	if err := c.WriteRows(spreadsheetID, tabTitle, rows); err != nil {
		return fmt.Errorf("failed to write board to tab: %w", err)
	}
	return nil
}

// hasSheet reports whether the spreadsheet has a tab with the given title
func hasSheet(spreadsheet *sheets.Spreadsheet, title string) bool {
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			return true
		}
	}
	return false
}

// a1Range quotes the tab title, e.g. 'Mon Mar 02 2026 07:00'!A1
func a1Range(sheetTitle, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheetTitle, "'", "''"), cells)
}

func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}
