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

// Package model addresses one structural-analysis model directory: the
// folder holding a model's .tcl scripts and their .mpco recorder outputs.
package model

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/tclpatch/pkg/patch"
)

const (
	tclExt       = ".tcl"
	backupSuffix = ".bak"
)

// Matches "name" and "N" in "name.part-N.mpco" / "name.part-N.mpco.cdata".
var partitionRe = regexp.MustCompile(`^(.+?)\.part-(\d+)\.mpco`)

// 📁 Model is a handle on a single model directory. It carries no state
// beyond the path; every operation re-reads the filesystem.
type Model struct {
	dir     string
	patcher *patch.Patcher
}

// 🏭 New creates a handle for the model directory at dir. The directory
// must already exist.
func New(dir string) (*Model, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Errorf("opening model directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("model path %q is not a directory", dir)
	}
	return &Model{
		dir:     dir,
		patcher: patch.NewPatcher(),
	}, nil
}

// Dir returns the model directory path.
func (m *Model) Dir() string {
	return m.dir
}

// Name returns the base name of the model directory, used in reports.
func (m *Model) Name() string {
	return filepath.Base(m.dir)
}

// 🔍 VerifyTclFile resolves filename to a path inside the model directory,
// appending the .tcl extension if missing, and confirms it exists as a
// regular file. It performs no other validation.
func (m *Model) VerifyTclFile(filename string) (string, error) {
	if !strings.HasSuffix(filename, tclExt) {
		filename += tclExt
	}

	target := filepath.Join(m.dir, filename)
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		return "", errors.Errorf("required file %q not found in model directory %q", filename, m.dir)
	}

	return target, nil
}

// glob returns the names of directory entries matching any of the given
// doublestar patterns, in directory order.
func (m *Model) glob(patterns ...string) ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, errors.Errorf("listing model directory %q: %w", m.dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		for _, pattern := range patterns {
			matched, err := doublestar.Match(pattern, entry.Name())
			if err != nil {
				return nil, errors.Errorf("matching pattern %q: %w", pattern, err)
			}
			if matched {
				names = append(names, entry.Name())
				break
			}
		}
	}
	return names, nil
}

// 📜 ListTclFiles returns every .tcl file directly inside the model
// directory.
func (m *Model) ListTclFiles() ([]string, error) {
	return m.glob("*" + tclExt)
}

// 📊 RecorderNames extracts the distinct recorder names encoded in the
// model's .mpco and .mpco.cdata companion file names, sorted.
func (m *Model) RecorderNames() ([]string, error) {
	names, err := m.glob("*.mpco", "*.mpco.cdata")
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var recorders []string
	for _, name := range names {
		match := partitionRe.FindStringSubmatch(name)
		if match == nil || seen[match[1]] {
			continue
		}
		seen[match[1]] = true
		recorders = append(recorders, match[1])
	}
	sort.Strings(recorders)
	return recorders, nil
}

// 🔢 PartitionCount infers the number of simulation partitions from the
// .mpco file names. Files without a ".part-N" marker indicate a serial
// run (one partition); no companion files at all yields zero.
func (m *Model) PartitionCount() (int, error) {
	names, err := m.glob("*.mpco", "*.mpco.cdata")
	if err != nil {
		return 0, err
	}

	partitions := map[int]bool{}
	for _, name := range names {
		match := partitionRe.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		id, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		partitions[id] = true
	}

	if len(partitions) == 0 {
		if len(names) > 0 {
			return 1, nil
		}
		return 0, nil
	}
	return len(partitions), nil
}

// 🛟 BackupFile copies the verified .tcl file to a sibling ".tcl.bak"
// path, preserving the source's timestamps. A prior backup is
// overwritten; there is no restore.
func (m *Model) BackupFile(filename string) (string, error) {
	target, err := m.VerifyTclFile(filename)
	if err != nil {
		return "", err
	}

	backupPath := target + backupSuffix
	if err := copyFile(target, backupPath); err != nil {
		return "", errors.Errorf("creating backup: %w", err)
	}

	if info, err := os.Stat(target); err == nil {
		// Timestamp preservation is best effort, matching shutil.copy2.
		_ = os.Chtimes(backupPath, info.ModTime(), info.ModTime())
		_ = os.Chmod(backupPath, info.Mode())
	}

	return backupPath, nil
}

// 🪞 MirrorStructure recreates the directory layout of src under dst,
// folders only, no files.
func (m *Model) MirrorStructure(ctx context.Context, src string, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Errorf("listing %q: %w", src, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		destDir := filepath.Join(dst, entry.Name())
		if err := os.MkdirAll(destDir, 0755); err != nil {
			return errors.Errorf("creating directory %q: %w", destDir, err)
		}
		if err := m.MirrorStructure(ctx, filepath.Join(src, entry.Name()), destDir); err != nil {
			return err
		}
	}
	return nil
}

// Transformation wrappers: resolve the file inside this model directory,
// then delegate to the patcher.

// InjectLine injects content after the first line of filename matching
// afterPattern.
func (m *Model) InjectLine(ctx context.Context, filename string, content string, afterPattern string) (bool, error) {
	target, err := m.VerifyTclFile(filename)
	if err != nil {
		return false, err
	}
	return m.patcher.InjectLine(ctx, target, content, afterPattern)
}

// ReplaceVariableValue updates every `set <name> ...` assignment in
// filename to carry newValue.
func (m *Model) ReplaceVariableValue(ctx context.Context, filename string, varName string, newValue any) (bool, error) {
	target, err := m.VerifyTclFile(filename)
	if err != nil {
		return false, err
	}
	return m.patcher.ReplaceVariableValue(ctx, target, varName, newValue)
}

// CommentOutBlock comments out the inclusive block of filename delimited
// by startPattern and endPattern.
func (m *Model) CommentOutBlock(ctx context.Context, filename string, startPattern string, endPattern string) (int, error) {
	target, err := m.VerifyTclFile(filename)
	if err != nil {
		return 0, err
	}
	return m.patcher.CommentOutBlock(ctx, target, startPattern, endPattern)
}

// ReplaceStringContent replaces every literal occurrence of oldString in
// filename with newString.
func (m *Model) ReplaceStringContent(ctx context.Context, filename string, oldString string, newString string) (int, error) {
	target, err := m.VerifyTclFile(filename)
	if err != nil {
		return 0, err
	}
	return m.patcher.ReplaceStringContent(ctx, target, oldString, newString)
}

// copyFile copies src to dst byte for byte.
func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Errorf("copying content: %w", err)
	}
	return nil
}
