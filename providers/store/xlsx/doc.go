// Package xlsx writes batch results to a workbook with
// github.com/xuri/excelize/v2, one row per image.
package xlsx
