// Copyright 2025 walteh LLC
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

package patch

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📖 ReadLines reads every line of the file at path, preserving line
// terminators. Each element ends with '\n' except possibly the last, so
// concatenating the slice reproduces the file byte for byte.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, errors.Errorf("reading %s: %w", path, err)
		}
	}
}

// 💾 WriteLines writes lines back to path, atomically replacing the prior
// contents (write to a temp sibling, then rename).
func WriteLines(ctx context.Context, path string, lines []string) error {
	tempPath := path + ".tmp"

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
	}

	if err := os.WriteFile(tempPath, []byte(sb.String()), 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
