// SPDX-License-Identifier: MIT
package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blockdiag/ensemble"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestReadFile_RealDatasets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "block.yaml", `
diag: [1.0, 2.0, 3.0]
offdiag: [0.5, 0.5]
weights:
  - [1, 2]
  - [3, 4]
`)
	ds, err := ReadFile(filepath.Join(dir, "block.yaml"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"diag", "offdiag", "weights"}, ds.Tags())

	d, err := ds.Float("diag")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, d.Data())

	w, err := ds.Get("weights")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, w.Shape())
	assert.Equal(t, []complex128{1, 2, 3, 4}, w.Data())

	_, err = ds.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestReadFile_ComplexPair(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "psi.yaml", `
psi:
  real: [1.0, 0.0]
  imag: [0.0, 1.0]
phi:
  r: [2.0]
  i: [3.0]
`)
	ds, err := ReadFile(filepath.Join(dir, "psi.yaml"))
	require.NoError(t, err)

	psi, err := ds.Get("psi")
	require.NoError(t, err)
	assert.Equal(t, []complex128{1, 1i}, psi.Data())

	phi, err := ds.Get("phi")
	require.NoError(t, err)
	assert.Equal(t, []complex128{2 + 3i}, phi.Data())
}

func TestReadFile_ComplexPartShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
psi:
  real: [1.0, 2.0]
  imag: [3.0]
`)
	_, err := ReadFile(filepath.Join(dir, "bad.yaml"))
	assert.ErrorIs(t, err, ErrComplexParts)
}

func TestReadFile_RaggedRows(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ragged.yaml", `
m:
  - [1, 2]
  - [3]
`)
	_, err := ReadFile(filepath.Join(dir, "ragged.yaml"))
	assert.ErrorIs(t, err, ErrRaggedData)
}

func TestReadFile_NonNumericLeaf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
m: [1, "two", 3]
`)
	_, err := ReadFile(filepath.Join(dir, "bad.yaml"))
	assert.ErrorIs(t, err, ErrBadDataset)
}

func TestReadFile_WithTags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "block.yaml", `
diag: [1.0]
offdiag: []
extra: [9, 9, 9]
`)
	path := filepath.Join(dir, "block.yaml")

	ds, err := ReadFile(path, WithTags("diag", "offdiag"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"diag", "offdiag"}, ds.Tags())

	_, err = ReadFile(path, WithTags("absent"))
	assert.ErrorIs(t, err, ErrUnknownTag)

	assert.Panics(t, func() { WithTags() })
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "block_N1_even.yaml", "diag: [1.0]\noffdiag: []\n")
	writeFile(t, dir, "block_N2_odd.yaml", "diag: [2.0]\noffdiag: []\n")
	writeFile(t, dir, "README.txt", "not a dataset")

	got, err := ReadDir(dir, `^block_(\w+)_(\w+)\.yaml$`)
	require.NoError(t, err)
	require.Len(t, got, 2)

	ds, ok := got[ensemble.KeyOf("N1", "even")]
	require.True(t, ok)
	d, err := ds.Float("diag")
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, d.Data())

	blocks := Blocks(got)
	assert.Equal(t, []ensemble.Block{{"N1", "even"}, {"N2", "odd"}}, blocks)
}

func TestReadDir_WalksSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "run1")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "block_N1.yaml", "diag: [1.0]\noffdiag: []\n")

	got, err := ReadDir(dir, `^block_(\w+)\.yaml$`)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReadDir_Guards(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadDir(dir, `^block_[`)
	assert.ErrorIs(t, err, ErrBadPattern)

	_, err = ReadDir(dir, `^block\.yaml$`)
	assert.ErrorIs(t, err, ErrNoCaptures)
}

func TestReadDir_DuplicateBlock(t *testing.T) {
	dir := t.TempDir()
	// Two files in different subdirectories resolving to one block.
	for _, sub := range []string{"run1", "run2"} {
		p := filepath.Join(dir, sub)
		require.NoError(t, os.Mkdir(p, 0o755))
		writeFile(t, p, "block_N1.yaml", "diag: [1.0]\noffdiag: []\n")
	}
	_, err := ReadDir(dir, `^block_(\w+)\.yaml$`)
	assert.ErrorIs(t, err, ErrDuplicateBlock)
}
