package command

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"lxoreader/internal/lxob"
	"lxoreader/internal/lxob/lxobtest"
	"lxoreader/internal/pkg"
	"lxoreader/internal/report"
	"lxoreader/internal/source"
)

var testPoints = []lxob.Point{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0, Z: -3}, {X: 4, Y: 5, Z: 6}}

// decoyFile 的 TAGS 块数据里藏着一个假的 PNTS 块头，只有按块边界遍历才能找到真正的 PNTS
func decoyFile() []byte {
	decoy := binary.BigEndian.AppendUint32([]byte(lxob.PntsTag), lxob.PointSize)
	decoy = append(decoy, lxobtest.Points(lxob.Point{X: 9, Y: 9, Z: 9})...)
	return lxobtest.File(
		lxobtest.Chunk("TAGS", decoy),
		lxobtest.Chunk("PNTS", lxobtest.Points(testPoints...)),
	)
}

func newTestFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "cube.lxo", decoyFile(), 0644))
	require.NoError(t, afero.WriteFile(fs, "cube.txt", decoyFile(), 0644))
	return fs
}

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	a := &app{fs: fs, metrics: pkg.NewMetrics()}
	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspect(t *testing.T) {
	fs := newTestFs(t)

	out, err := run(t, fs, "inspect", "cube.lxo")
	require.NoError(t, err)
	assert.Contains(t, out, "32.4.1")
	assert.Contains(t, out, lxobtest.Author)

	out, err = run(t, fs, "inspect", "cube.lxo", "-o", "json")
	require.NoError(t, err)
	var s report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 2, s.ChunkCount)
	assert.Equal(t, 3, s.PointCount)
}

func TestChunks(t *testing.T) {
	out, err := run(t, newTestFs(t), "chunks", "cube.lxo", "--format", "yaml")
	require.NoError(t, err)

	var list report.ChunkList
	require.NoError(t, yaml.Unmarshal([]byte(out), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "TAGS", list[0].Tag)
	assert.Equal(t, lxob.HeaderSize, list[0].Offset)
	assert.Equal(t, lxob.PntsTag, list[1].Tag)
}

func TestPoints(t *testing.T) {
	fs := newTestFs(t)

	t.Run("Walk", func(t *testing.T) {
		out, err := run(t, fs, "points", "cube.lxo", "-o", "json")
		require.NoError(t, err)
		var list report.PointList
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		assert.Len(t, list, 3)
	})
	t.Run("Scan", func(t *testing.T) {
		out, err := run(t, fs, "points", "cube.lxo", "-o", "json", "--locate", "scan")
		require.NoError(t, err)
		var list report.PointList
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Len(t, list, 1)
		assert.Equal(t, float32(9), list[0].X)
	})
	t.Run("Where", func(t *testing.T) {
		out, err := run(t, fs, "points", "cube.lxo", "-o", "json", "--where", "z > 0")
		require.NoError(t, err)
		var list report.PointList
		require.NoError(t, json.Unmarshal([]byte(out), &list))
		require.Len(t, list, 2)
		assert.Equal(t, 2, list[1].Index)
	})
	t.Run("BadWhere", func(t *testing.T) {
		_, err := run(t, fs, "points", "cube.lxo", "--where", "x +")
		assert.Error(t, err)
	})
}

func TestCommandErrors(t *testing.T) {
	fs := newTestFs(t)

	_, err := run(t, fs, "inspect", "cube.txt")
	assert.ErrorIs(t, err, source.ErrUnsupportedExtension)

	_, err = run(t, fs, "inspect", "missing.lxo")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, fs, "inspect", "cube.lxo", "--format", "xml")
	assert.ErrorContains(t, err, "xml")

	_, err = run(t, fs, "inspect", "cube.lxo", "--locate", "fast")
	assert.ErrorContains(t, err, "fast")

	_, err = run(t, fs, "inspect")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "short.lxo", decoyFile()[:40], 0644))
	_, err = run(t, fs, "chunks", "short.lxo")
	assert.ErrorIs(t, err, lxob.ErrTruncated)
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "decode.yaml"), []byte("decode:\n  require_points: true\n"), 0644))

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "empty.lxo", lxobtest.File(lxobtest.Chunk("TAGS", []byte("a\x00"))), 0644))

	a := &app{fs: fs, metrics: pkg.NewMetrics()}
	cmd := newRootCommand(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", dir, "inspect", "empty.lxo"})
	err := cmd.Execute()
	assert.ErrorIs(t, err, lxob.ErrChunkNotFound)
	assert.True(t, a.opts.RequirePoints)
}

func TestNewServer(t *testing.T) {
	a := &app{
		opts:    lxob.DefaultOptions(),
		logger:  zap.NewNop(),
		metrics: pkg.NewMetrics(),
	}
	srv, err := a.newServer(pkg.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, 10*time.Second, srv.ReadTimeout)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/decode", bytes.NewReader(decoyFile())))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunServerShutdown(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	assert.NoError(t, runServer(ctx, srv))
}

func TestRunServerListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	err = runServer(context.Background(), srv)
	assert.ErrorContains(t, err, "http 服务异常退出")
}

func TestConfigExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "decode.yaml"), []byte("decode:\n  extensions: [txt]\n"), 0644))

	fs := newTestFs(t)
	a := &app{fs: fs, metrics: pkg.NewMetrics()}
	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", dir, "inspect", "cube.txt"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "32.4.1")

	cmd = newRootCommand(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", dir, "inspect", "cube.lxo"})
	assert.ErrorIs(t, cmd.Execute(), source.ErrUnsupportedExtension)
}
