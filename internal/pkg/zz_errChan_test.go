package pkg

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// TestWithErrChan 测试 WithErrChan 和 ErrChanFromContext 方法
func TestWithErrChan(t *testing.T) {
	errChan := make(chan error, 1)
	ctx := WithErrChan(context.Background(), errChan)

	extractedErrChan := ErrChanFromContext(ctx)
	if extractedErrChan == nil {
		t.Fatalf("期望从上下文中提取到错误通道，但提取结果为 nil")
	}

	// 通过提取到的通道发送，在原始通道接收
	go func() {
		extractedErrChan <- fmt.Errorf("测试错误")
	}()

	select {
	case err := <-errChan:
		if err.Error() != "测试错误" {
			t.Errorf("收到的错误不正确: %v", err)
		}
	case <-time.After(1 * time.Second):
		t.Errorf("在1秒内没有收到预期的错误")
	}
}

// TestErrChanFromContextWithoutErrChan 测试当上下文中没有错误通道时的情况
func TestErrChanFromContextWithoutErrChan(t *testing.T) {
	if ErrChanFromContext(context.Background()) != nil {
		t.Errorf("期望提取结果为 nil，但提取到非空通道")
	}
}

// TestReportErr 非阻塞上报
func TestReportErr(t *testing.T) {
	if ReportErr(context.Background(), fmt.Errorf("x")) {
		t.Error("没有错误通道时不应上报成功")
	}
	errChan := make(chan error, 1)
	ctx := WithErrChan(context.Background(), errChan)
	if !ReportErr(ctx, fmt.Errorf("first")) {
		t.Error("期望第一次上报成功")
	}
	if ReportErr(ctx, fmt.Errorf("second")) {
		t.Error("通道已满时应丢弃")
	}
	if err := <-errChan; err.Error() != "first" {
		t.Errorf("期望收到 first，但得到的是 %v", err)
	}
}
