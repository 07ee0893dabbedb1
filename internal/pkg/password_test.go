package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "普通密码", password: "password123"},
		{name: "空密码", password: ""},
		{name: "包含特殊字符的密码", password: "p@ss!w0rd#中文"},
		{name: "长密码", password: strings.Repeat("a", 70)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))
		})
	}
}

func TestHashPassword_DifferentSalts(t *testing.T) {
	// 同一密码两次哈希结果不同
	hash1, err := HashPassword("password123")
	assert.NoError(t, err)
	hash2, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{name: "正确的密码", hash: hash, password: "password123", want: true},
		{name: "错误的密码", hash: hash, password: "wrongpassword", want: false},
		{name: "空密码", hash: hash, password: "", want: false},
		{name: "哈希损坏", hash: "not-a-bcrypt-hash", password: "password123", want: false},
		{name: "空哈希", hash: "", password: "password123", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hash, tt.password))
		})
	}
}
