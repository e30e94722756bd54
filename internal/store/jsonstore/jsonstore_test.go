package jsonstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/idilsaglam/costcheck/internal/export"
	"github.com/idilsaglam/costcheck/internal/model"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	c := model.Checklist{{ID: 1, Title: "S", Items: []model.Item{{ID: "a", Text: "A", Checked: true}, {ID: "b", Text: "B"}}}}
	snap := export.NewSnapshot("", c, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), language.AmericanEnglish)

	p, err := Save(dir, export.JSONFilename, func(w io.Writer) error {
		return export.NewJSON().Write(w, snap)
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, export.JSONFilename), p)

	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())

	doc, err := Load(dir) // directory resolves to the default file name
	require.NoError(t, err)
	assert.Equal(t, 50, doc.Progress)
	assert.Equal(t, c, doc.Sections)
}

func TestSaveFailureLeavesNothingBehind(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("boom")
	_, err := Save(dir, "x.json", func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestSaveExport(t *testing.T) {
	dir := t.TempDir()
	c := model.Checklist{{ID: 1, Title: "S", Items: []model.Item{{ID: "a", Text: "A"}}}}
	snap := export.NewSnapshot("", c, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), language.AmericanEnglish)
	reg := export.DefaultRegistry(nil)

	_, err := SaveExport(dir, reg, export.Markdown, snap)
	require.ErrorIs(t, err, export.ErrUnavailable, "not loaded yet")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, reg.Load(context.Background()))
	p, err := SaveExport(dir, reg, export.Markdown, snap)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "aws_cost_optimization_report_10-18-2026.md"), p)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "- [ ] A")

	_, err = SaveExport(dir, reg, export.Format("odt"), snap)
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}
