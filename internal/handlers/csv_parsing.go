package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mkamphuis/fundfolio/internal/models"
)

// ParseHoldingsCSV parses a holdings import CSV into Holding records.
// Required columns: name, isin, quantity, target_buy_amount
// Optional columns: ticker, objective, type, potential_income, distributes
// Malformed rows (short records, empty ISIN, non-numeric or negative
// numbers) are skipped and reported as human-readable row errors; ingestion
// never aborts on a single bad row. Only a missing required header is a
// hard error.
func ParseHoldingsCSV(r io.Reader) ([]models.Holding, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	required := []string{"name", "isin", "quantity", "target_buy_amount"}
	for _, col := range required {
		if _, ok := colIdx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	col := func(record []string, name string) (string, bool) {
		idx, ok := colIdx[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}
	optionalCol := func(record []string, name string) string {
		v, _ := col(record, name)
		return v
	}

	var holdings []models.Holding
	var csvErrors []string
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			csvErrors = append(csvErrors, fmt.Sprintf("row %d: unreadable record: %v", rowNum, err))
			continue
		}

		name, nameOK := col(record, "name")
		isin, isinOK := col(record, "isin")
		quantityStr, qtyOK := col(record, "quantity")
		targetStr, targetOK := col(record, "target_buy_amount")
		if !nameOK || !isinOK || !qtyOK || !targetOK {
			csvErrors = append(csvErrors, fmt.Sprintf("row %d: has %d columns, fewer than required", rowNum, len(record)))
			continue
		}
		if isin == "" {
			csvErrors = append(csvErrors, fmt.Sprintf("row %d: isin is empty", rowNum))
			continue
		}

		quantity, err := strconv.ParseFloat(quantityStr, 64)
		if err != nil {
			csvErrors = append(csvErrors, fmt.Sprintf("row %d: invalid quantity %q", rowNum, quantityStr))
			continue
		}
		target, err := strconv.ParseFloat(targetStr, 64)
		if err != nil {
			csvErrors = append(csvErrors, fmt.Sprintf("row %d: invalid target_buy_amount %q", rowNum, targetStr))
			continue
		}
		if quantity < 0 || target < 0 {
			csvErrors = append(csvErrors, fmt.Sprintf("row %d: quantity and target_buy_amount must not be negative", rowNum))
			continue
		}

		isin = strings.ToUpper(isin)
		holdings = append(holdings, models.Holding{
			ID:              isin,
			ISIN:            isin,
			Ticker:          optionalCol(record, "ticker"),
			Name:            name,
			Quantity:        quantity,
			Objective:       optionalCol(record, "objective"),
			Type:            optionalCol(record, "type"),
			PotentialIncome: optionalCol(record, "potential_income"),
			TargetBuyAmount: target,
			Distributes:     optionalCol(record, "distributes"),
		})
	}

	return holdings, csvErrors, nil
}
