package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContentFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestContentPageWithFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, "privacy.md", `---
title: Privacy Policy
lastUpdated: 2026-03-01
---

## Your data

We keep as little as possible.
`)

	svc := NewContentService(dir)

	page, err := svc.Page("privacy")
	require.NoError(t, err)

	assert.Equal(t, "Privacy Policy", page.Title)
	assert.Equal(t, "privacy", page.Slug)
	assert.Equal(t, "March 1, 2026", page.LastUpdated)
	assert.Contains(t, page.HTML, "<h2")
	assert.Contains(t, page.HTML, "Your data")
	assert.NotContains(t, page.HTML, "lastUpdated")
}

func TestContentPageTitleFromSlug(t *testing.T) {
	dir := t.TempDir()
	writeContentFile(t, dir, "terms-of-service.md", "Just the body.\n")

	svc := NewContentService(dir)

	page, err := svc.Page("terms-of-service")
	require.NoError(t, err)
	assert.Equal(t, "Terms Of Service", page.Title)
}

func TestContentPageNotFound(t *testing.T) {
	svc := NewContentService(t.TempDir())

	_, err := svc.Page("missing")
	assert.Error(t, err)
}
