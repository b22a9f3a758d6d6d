package main

import (
	"archive/zip"
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"os"
)

func writeOnce(program string, file *zip.Writer) error {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(program)))
	w1, err := file.Create(fmt.Sprintf("corpus/%s.lisp", hash))
	if err != nil {
		return err
	}

	reader := bytes.NewReader([]byte(program))
	if _, err := io.Copy(w1, reader); err != nil {
		return err
	}

	return nil
}

// writeCorpus stores each program in the archive under the hash of its content.
func writeCorpus(programs []string, path string) error {
	archive, err := os.Create(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	zipWriter := zip.NewWriter(archive)

	written := make(map[string]struct{})
	for _, program := range programs {
		if _, found := written[program]; found {
			continue
		}
		written[program] = struct{}{}

		if err := writeOnce(program, zipWriter); err != nil {
			return err
		}
	}

	if err := zipWriter.SetComment(fmt.Sprintf("Fuzzing corpus of %d programs", len(written))); err != nil {
		return err
	}

	return zipWriter.Close()
}
