package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ObjectStore 对象存储抽象，上传模块只依赖这个接口
type ObjectStore interface {
	// Put 写入对象并返回相对访问路径
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// LocalStore 本地磁盘实现，开发环境使用
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("存储目录不能为空")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.baseDir, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return "/uploads/" + key, nil
}
