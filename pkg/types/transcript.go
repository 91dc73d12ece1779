// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FilePrefix is the archive's document filename prefix. Both the remote PDF
// name and the local text name are derived from it and the YYYYMMDD date
// string, which is the sole key for a transcript end to end.
const FilePrefix = "FOMCpresconf"

// PDFName returns the remote document filename for a date.
func PDFName(date string) string {
	return FilePrefix + date + ".pdf"
}

// TextName returns the local transcript filename for a date.
func TextName(date string) string {
	return FilePrefix + date + ".txt"
}
