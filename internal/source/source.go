// Package source 负责把 .lxo 文件完整读入内存，交给 lxob 包解码。
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrNoExtensions 允许的扩展名列表为空
	ErrNoExtensions = errors.New("supported file extensions list is empty")
	// ErrMissingExtension 文件没有扩展名
	ErrMissingExtension = errors.New("file has no extension")
	// ErrUnsupportedExtension 扩展名不在允许列表中
	ErrUnsupportedExtension = errors.New("unsupported file extension")
)

// DefaultExtensions 默认只接受 .lxo
var DefaultExtensions = []string{"lxo"}

// Extension 返回不带点的扩展名，没有扩展名时返回 ""
func Extension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

// CheckExtension 检查文件扩展名是否在 extensions 中，不区分大小写
func CheckExtension(name string, extensions []string) error {
	if len(extensions) == 0 {
		return ErrNoExtensions
	}
	ext := Extension(name)
	if ext == "" {
		return fmt.Errorf("%w: %s", ErrMissingExtension, name)
	}
	if !slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(strings.TrimPrefix(e, "."), ext)
	}) {
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, ext)
	}
	return nil
}

// Loader 从文件系统读取完整文件
type Loader struct {
	Fs         afero.Fs
	Extensions []string
}

// NewLoader 使用操作系统文件系统创建 Loader，extensions 为空时使用 DefaultExtensions
func NewLoader(extensions []string) *Loader {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Loader{Fs: afero.NewOsFs(), Extensions: extensions}
}

// Load 检查扩展名后把文件整个读入内存
func (l *Loader) Load(name string) ([]byte, error) {
	if err := CheckExtension(name, l.Extensions); err != nil {
		return nil, err
	}
	buf, err := afero.ReadFile(l.Fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return buf, nil
}
