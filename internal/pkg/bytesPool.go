package pkg

import (
	"bytes"
	"sync"
)

// maxPooledCap 超过该容量的缓冲区不放回池中，避免单个大文件长期占用内存
const maxPooledCap = 16 << 20

// BufferPool 是一个缓冲区池，用于读取请求体
// 减少gc， 减少内存分配
type BufferPool struct {
	pool *sync.Pool
}

// NewBufferPool 创建一个缓冲区池，size 为新建缓冲区的初始容量
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: &sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
	}
}

// Get 从池中获取一个已清空的缓冲区
func (p *BufferPool) Get() *bytes.Buffer {
	buf := p.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put 将缓冲区放回池中。放回后调用方不能再引用其中的字节
func (p *BufferPool) Put(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxPooledCap {
		return
	}
	p.pool.Put(b)
}

// BufferPoolInstance 是BufferPool的单例
// 初始容量 64KB，常见的 .lxo 文件都在这个量级
var BufferPoolInstance = NewBufferPool(64 << 10)
