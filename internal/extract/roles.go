// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import "strings"

// Role is the semantic meaning of a table column, resolved once per table
// from its header labels. Row fields are then read strictly by role instead
// of probing ad hoc header spellings per row.
type Role string

const (
	RoleName      Role = "name"
	RoleISIN      Role = "isin"
	RoleValue     Role = "value"
	RoleQuantity  Role = "quantity"
	RolePrice     Role = "price"
	RoleWeight    Role = "weight"
	RoleCurrency  Role = "currency"
	RoleTicker    Role = "ticker"
	RoleSector    Role = "sector"
	RoleAssetType Role = "asset_type"
)

// roleRule maps a role to the header substrings that imply it. Earlier
// rules win when a header could mean two things ("Asset Type" must resolve
// to asset_type, not name).
type roleRule struct {
	role     Role
	keywords []string
}

var roleRules = []roleRule{
	{RoleISIN, []string{"isin", "identifier"}},
	{RoleAssetType, []string{"asset type", "asset class", "type", "class"}},
	{RoleSector, []string{"sector", "industry"}},
	{RoleCurrency, []string{"currency", "ccy"}},
	{RoleTicker, []string{"ticker", "symbol"}},
	{RoleQuantity, []string{"quantity", "shares", "units", "nominal"}},
	{RolePrice, []string{"price"}},
	{RoleWeight, []string{"weight", "percent", "%", "allocation"}},
	{RoleValue, []string{"value", "amount", "balance"}},
	{RoleName, []string{"security", "name", "asset", "description", "holding"}},
}

// roleMap holds, per role, the column indices carrying it, in column order.
type roleMap map[Role][]int

// resolveRoles builds the header-to-role mapping for one table.
func resolveRoles(headers []string) roleMap {
	m := make(roleMap)
	for col, header := range headers {
		role, ok := roleFor(header)
		if !ok {
			continue
		}
		m[role] = append(m[role], col)
	}
	return m
}

// roleFor resolves a single header label to a role.
func roleFor(header string) (Role, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "", false
	}
	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(h, kw) {
				return rule.role, true
			}
		}
	}
	return "", false
}

// has reports whether any column resolved to the role.
func (m roleMap) has(role Role) bool {
	return len(m[role]) > 0
}

// firstPopulated returns the first non-blank field among the role's columns
// for the given row.
func (m roleMap) firstPopulated(role Role, row []string) string {
	for _, col := range m[role] {
		if col >= len(row) {
			continue
		}
		if field := strings.TrimSpace(row[col]); field != "" {
			return field
		}
	}
	return ""
}

// isHoldingsTable reports whether the resolved roles identify a table that
// enumerates securities: a name-like column plus an identifier-like or
// value-like column.
func (m roleMap) isHoldingsTable() bool {
	return m.has(RoleName) && (m.has(RoleISIN) || m.has(RoleValue))
}
