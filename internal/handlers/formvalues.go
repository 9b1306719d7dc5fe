// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strconv"
	"strings"
)

// fv returns the first trimmed value for key.
func fv(values map[string][]string, key string) string {
	if vs, ok := values[key]; ok && len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

// fvBool reads a checkbox: present and "true" means checked.
func fvBool(values map[string][]string, key string) bool {
	return fv(values, key) == "true"
}

// fvFloat reads a decimal input; malformed input reads as 0 and is caught
// by validation.
func fvFloat(values map[string][]string, key string) float64 {
	f, _ := strconv.ParseFloat(fv(values, key), 64)
	return f
}

// fvInt reads an integer input.
func fvInt(values map[string][]string, key string) int {
	n, _ := strconv.Atoi(fv(values, key))
	return n
}
