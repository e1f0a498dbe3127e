// Package fileutil provides document reading and directory scanning for
// the CLI: reads strip CR/LF line breaks so "~" is the only segment
// break the parser ever sees, and scans collect the flat document sets
// the batch matcher pairs up.
package fileutil
