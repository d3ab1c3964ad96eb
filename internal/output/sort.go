// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"
)

// SortRows orders rows by a comma separated list of fields. A leading "-"
// sorts a field descending and a leading "!" compares it case sensitively.
// An empty spec keeps the input order.
func SortRows(rows []Row, spec string) {
	if spec == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(rows, func(one, two int) bool {
		for _, field := range fields {
			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := rows[one].Field(field)
			twoValue := rows[two].Field(field)

			oneInt, oneOk := oneValue.(int)
			twoInt, twoOk := twoValue.(int)
			if oneOk && twoOk {
				if oneInt != twoInt {
					if ascending {
						return oneInt < twoInt
					}
					return oneInt > twoInt
				}
				continue
			}

			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)
			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				if ascending {
					return oneStr < twoStr
				}
				return oneStr > twoStr
			}
		}
		return false
	})
}
