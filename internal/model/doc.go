// Package model defines the core data structures and date arithmetic used
// throughout conception-songs.
//
// # Dates
//
// ParseBirthDate validates user input and returns a UTC calendar date:
//
//	birth, err := model.ParseBirthDate("1990-01-01", time.Now())
//	conception := model.ConceptionDate(birth) // 1989-03-27
//	window := model.NewWindow(conception)     // 1989-03-24..1989-03-30
//
// # Chart entries
//
// ChartEntry represents a single on the chart. Entries are collected from
// every fetched page and then ordered with SortByRank:
//
//	model.SortByRank(entries)
//	top := model.Truncate(entries, 5)
//
// # Report
//
// Report bundles the birth date, derived dates and the final song list for
// the output renderers.
package model
