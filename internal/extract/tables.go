// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"strconv"
	"strings"

	"holdings-scan/internal/document"
)

// HoldingsFromTables extracts raw securities from classified tables. Only
// holdings tables (see roleMap.isHoldingsTable) contribute; a row survives
// when it has a name and a positive value.
func HoldingsFromTables(tables []document.Table) []document.Security {
	var holdings []document.Security
	for _, table := range tables {
		holdings = append(holdings, holdingsFromTable(table)...)
	}
	return holdings
}

func holdingsFromTable(table document.Table) []document.Security {
	roles := resolveRoles(table.Headers)
	if !roles.isHoldingsTable() {
		return nil
	}

	source := table.Source
	if source == "" {
		source = "table"
	}

	var holdings []document.Security
	for _, row := range table.Rows {
		name := roles.firstPopulated(RoleName, row)
		if name == "" {
			continue
		}

		value := parseNumeric(roles.firstPopulated(RoleValue, row))
		if value <= 0 {
			continue
		}

		sec := document.Security{
			Name:      name,
			ISIN:      roles.firstPopulated(RoleISIN, row),
			Value:     document.Float(value),
			Ticker:    roles.firstPopulated(RoleTicker, row),
			Currency:  roles.firstPopulated(RoleCurrency, row),
			Sector:    roles.firstPopulated(RoleSector, row),
			AssetType: roles.firstPopulated(RoleAssetType, row),
			Source:    source,
		}
		if q := parseNumeric(roles.firstPopulated(RoleQuantity, row)); q != 0 {
			sec.Quantity = document.Float(q)
		}
		if p := parseNumeric(roles.firstPopulated(RolePrice, row)); p != 0 {
			sec.Price = document.Float(p)
		}
		if w := parseNumeric(roles.firstPopulated(RoleWeight, row)); w != 0 {
			sec.Weight = document.Float(w)
		}

		holdings = append(holdings, sec)
	}
	return holdings
}

// parseNumeric coerces a table field to a number by stripping everything
// except digits, '.', and '-'. Unparseable fields default to 0.
func parseNumeric(field string) float64 {
	if field == "" {
		return 0
	}

	var b strings.Builder
	for _, r := range field {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}
