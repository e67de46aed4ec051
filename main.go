/*
Package main is the gantt2svg command: it turns a CSV of named date ranges
into a Gantt chart SVG.

Rows sharing a name are merged into one chart row; overlapping or touching
ranges within a row are drawn as a single block. The background grid has one
band per row, a tick per date column and a highlight over the column that
contains the current time, optionally laid out right-to-left.
*/
package main

import "gantt2svg/cmd"

func main() {
	cmd.Execute()
}
