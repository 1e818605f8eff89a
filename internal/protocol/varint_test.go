package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// TestVarintEncoding 覆盖 VarInt 的编码与解码
func TestVarintEncoding(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		wire  []byte
	}{
		{"零值", 0, []byte{0x00}},
		{"单字节最大值", 127, []byte{0x7F}},
		{"两字节", 128, []byte{0x80, 0x01}},
		{"300", 300, []byte{0xAC, 0x02}},
		{"三字节", 2097151, []byte{0xFF, 0xFF, 0x7F}},
		{"int32最大值", 2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{"负数", -1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := WriteVarint(buf, tt.value); err != nil {
				t.Fatalf("WriteVarint() 返回错误: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.wire) {
				t.Errorf("WriteVarint(%d) = %x, 期望 %x", tt.value, buf.Bytes(), tt.wire)
			}
			if n := VarintLen(tt.value); n != len(tt.wire) {
				t.Errorf("VarintLen(%d) = %d, want %d", tt.value, n, len(tt.wire))
			}

			got, err := ReadVarint(bytes.NewReader(tt.wire))
			if err != nil {
				t.Fatalf("ReadVarint() 返回错误: %v", err)
			}
			if got != tt.value {
				t.Errorf("ReadVarint() = %d, 期望 %d", got, tt.value)
			}
		})
	}
}

// TestReadVarintErrors 测试不完整和过长的 VarInt
func TestReadVarintErrors(t *testing.T) {
	if _, err := ReadVarint(bytes.NewReader(nil)); err != io.EOF {
		t.Errorf("空输入应返回 EOF，实际: %v", err)
	}
	if _, err := ReadVarint(bytes.NewReader([]byte{0x80})); err != io.EOF {
		t.Errorf("截断输入应返回 EOF，实际: %v", err)
	}
	tooLong := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	if _, err := ReadVarint(bytes.NewReader(tooLong)); !errors.Is(err, ErrVarIntTooLong) {
		t.Errorf("过长 VarInt 应返回 ErrVarIntTooLong，实际: %v", err)
	}
}

// readerOnly hides io.ByteReader so the slow path is exercised.
type readerOnly struct{ r io.Reader }

func (r readerOnly) Read(p []byte) (int, error) { return r.r.Read(p) }

func TestReadVarintWithoutByteReader(t *testing.T) {
	got, err := ReadVarint(readerOnly{bytes.NewReader([]byte{0xAC, 0x02})})
	if err != nil {
		t.Fatalf("ReadVarint() error: %v", err)
	}
	if got != 300 {
		t.Errorf("ReadVarint() = %d, want 300", got)
	}
}

// TestVarLongRoundTrip 测试 VarLong 的往返一致性
func TestVarLongRoundTrip(t *testing.T) {
	values := []int64{0, 1, 127, 128, 300, 2097151, -1, 9223372036854775807}

	for _, value := range values {
		buf := &bytes.Buffer{}
		if err := WriteVarLong(buf, value); err != nil {
			t.Fatalf("WriteVarLong(%d) 错误: %v", value, err)
		}
		got, err := ReadVarLong(buf)
		if err != nil {
			t.Fatalf("ReadVarLong() 错误: %v", err)
		}
		if got != value {
			t.Errorf("往返测试失败: 写入 %d, 读取 %d", value, got)
		}
	}

	tooLong := bytes.Repeat([]byte{0x80}, 10)
	tooLong = append(tooLong, 0x01)
	if _, err := ReadVarLong(bytes.NewReader(tooLong)); !errors.Is(err, ErrVarLongTooLong) {
		t.Errorf("过长 VarLong 应返回 ErrVarLongTooLong，实际: %v", err)
	}
}
