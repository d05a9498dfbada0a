package tcx

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

const xmlProlog = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// OutputPath derives the document filename from the input log: the input's
// base name with a .tcx suffix, placed in outDir (or next to the input when
// outDir is empty).
func OutputPath(inputPath, outDir string) string {
	name := filepath.Base(inputPath) + ".tcx"
	if outDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return filepath.Join(outDir, name)
}

// WriteFile marshals the document with a UTF-8 XML prolog and saves it at
// the derived path. The write goes through a temp file and rename so a
// failed conversion never leaves a partial artifact behind.
func WriteFile(doc *TrainingCenterDatabase, inputPath, outDir string) (string, error) {
	out := OutputPath(inputPath, outDir)

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), filepath.Base(out)+".tmp*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.WriteString(xmlProlog)
	if err == nil {
		_, err = tmp.Write(data)
	}
	if err == nil {
		_, err = tmp.WriteString("\n")
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("write document: %w", err)
	}

	if err := os.Rename(tmpName, out); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("save document: %w", err)
	}
	return out, nil
}
