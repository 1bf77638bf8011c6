// Copyright 2025 Cywil Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MergeJSONL concatenates per-document JSONL files into one corpus
// file. Inputs are ordered by base filename so two runs over the same
// set of files produce byte-identical output regardless of the order
// documents finished in.
func MergeJSONL(inputs []string, output string) (int, error) {
	sorted := make([]string, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool {
		return filepath.Base(sorted[i]) < filepath.Base(sorted[j])
	})

	out, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("creating merged file %s: %w", output, err)
	}
	defer out.Close()

	writer := bufio.NewWriter(out)
	lines := 0
	for _, path := range sorted {
		n, err := appendFile(writer, path)
		if err != nil {
			return lines, err
		}
		lines += n
	}
	if err := writer.Flush(); err != nil {
		return lines, fmt.Errorf("flushing merged file: %w", err)
	}
	return lines, nil
}

// appendFile copies one JSONL file line by line, skipping blank lines
// and guaranteeing a trailing newline after every record.
func appendFile(w io.Writer, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lines := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return lines, fmt.Errorf("writing merged line: %w", err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
