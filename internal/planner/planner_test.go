// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestPlan_EqualPathsNoOp(t *testing.T) {
	p := New(t.TempDir())

	assert.False(t, p.Plan("a/B.py", "a/B.py"))
	assert.Equal(t, 0, p.Len())
}

func TestPlan_RecordsMove(t *testing.T) {
	p := New(t.TempDir())

	assert.True(t, p.Plan("modules/Entity.py", "modules/AbstractEntity.py"))
	require.Equal(t, 1, p.Len())
	assert.Equal(t, Move{OldPath: "modules/Entity.py", NewPath: "modules/AbstractEntity.py"}, p.Planned()[0])
}

func TestPlan_SourceCollisionFirstWins(t *testing.T) {
	p := New(t.TempDir())

	require.True(t, p.Plan("a/X.py", "a/Y.py"))
	assert.False(t, p.Plan("a/X.py", "a/Z.py"))

	require.Equal(t, 1, p.Len())
	assert.Equal(t, "a/Y.py", p.Planned()[0].NewPath)
	require.Len(t, p.Skipped(), 1)
	assert.Equal(t, "a/Z.py", p.Skipped()[0].NewPath)
}

func TestPlan_RepeatedIdenticalRequestNotACollision(t *testing.T) {
	p := New(t.TempDir())

	require.True(t, p.Plan("a/X.py", "a/Y.py"))
	assert.False(t, p.Plan("a/X.py", "a/Y.py"))
	assert.Empty(t, p.Skipped())
}

func TestPlan_TargetCollisionFirstWins(t *testing.T) {
	p := New(t.TempDir())

	require.True(t, p.Plan("a/X.py", "a/Same.py"))
	assert.False(t, p.Plan("a/Z.py", "a/Same.py"))

	require.Equal(t, 1, p.Len())
	require.Len(t, p.Skipped(), 1)
	assert.Equal(t, "a/Z.py", p.Skipped()[0].OldPath)
}

func TestCommit_MovesFiles(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "modules/Entity.py", "class AbstractEntity: pass\n")

	p := New(root)
	require.True(t, p.Plan("modules/Entity.py", "modules/AbstractEntity.py"))

	applied, err := p.Commit()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	assert.NoFileExists(t, filepath.Join(root, "modules/Entity.py"))
	content, err := os.ReadFile(filepath.Join(root, "modules/AbstractEntity.py"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "AbstractEntity")
}

func TestCommit_DestinationExistsSkipped(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a/Old.py", "old\n")
	writeFixture(t, root, "a/New.py", "already applied\n")

	p := New(root)
	require.True(t, p.Plan("a/Old.py", "a/New.py"))

	applied, err := p.Commit()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	// Neither file was touched: no content overwritten.
	content, err := os.ReadFile(filepath.Join(root, "a/New.py"))
	require.NoError(t, err)
	assert.Equal(t, "already applied\n", string(content))
	assert.FileExists(t, filepath.Join(root, "a/Old.py"))
}

func TestCommit_MissingSourceSkipped(t *testing.T) {
	p := New(t.TempDir())
	require.True(t, p.Plan("gone/Old.py", "gone/New.py"))

	applied, err := p.Commit()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}

func TestCommit_FiresExactlyOnce(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a/Old.py", "x\n")

	p := New(root)
	require.True(t, p.Plan("a/Old.py", "a/New.py"))

	_, err := p.Commit()
	require.NoError(t, err)

	// A second commit is a guarded no-op even after new plans.
	p.Plan("a/New.py", "a/Other.py")
	applied, err := p.Commit()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.FileExists(t, filepath.Join(root, "a/New.py"))
}

func TestAbort_LeavesFileSystemUntouched(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "modules/Entity.py", "class Entity: pass\n")

	p := New(root)
	require.True(t, p.Plan("modules/Entity.py", "modules/AbstractEntity.py"))
	p.Abort()

	assert.FileExists(t, filepath.Join(root, "modules/Entity.py"))
	assert.NoFileExists(t, filepath.Join(root, "modules/AbstractEntity.py"))
	assert.Equal(t, 0, p.Len())
}

func TestCommit_CreatesParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a/Old.py", "x\n")

	p := New(root)
	require.True(t, p.Plan("a/Old.py", "b/c/New.py"))

	applied, err := p.Commit()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.FileExists(t, filepath.Join(root, "b/c/New.py"))
}
