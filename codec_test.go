package multiaddr

import (
	"bytes"
	"errors"
	"testing"
)

// TestStringToBytes 测试字符串到字节的编码
func TestStringToBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"IPv4 + TCP", "/ip4/127.0.0.1/tcp/4001", nil},
		{"IPv6 + TCP", "/ip6/::1/tcp/4001", nil},
		{"DNS + TCP", "/dns/example.com/tcp/80", nil},
		{"Complex", "/ip4/1.2.3.4/tcp/4001/p2p/QmcEPrat8ShnCph8WjkREzt5CPXF2RwhYxYBALDcLC1iV6", nil},
		{"Trailing slashes", "/ip4/127.0.0.1/tcp/4001//", nil},
		{"Unix path", "/unix/var/run/sock", nil},
		{"No leading slash", "ip4/127.0.0.1", ErrInvalidFormat},
		{"Unknown protocol", "/unknown/value", ErrUnknownProtocol},
		{"Missing value", "/ip4", ErrInvalidFormat},
		{"Missing port", "/ip4/127.0.0.1/tcp", ErrInvalidFormat},
		{"Bad IPv4 octet", "/ip4/999.1.1.1/tcp/80", ErrInvalidValue},
		{"Port out of range", "/ip4/127.0.0.1/tcp/70000", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stringToBytes(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("stringToBytes() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("stringToBytes() error = %v", err)
			}
			if len(got) == 0 {
				t.Error("stringToBytes() returned empty bytes")
			}
		})
	}
}

// TestStringToBytes_Canonical 测试已知地址的规范字节
func TestStringToBytes_Canonical(t *testing.T) {
	got, err := stringToBytes("/ip4/127.0.0.1/tcp/4001")
	if err != nil {
		t.Fatalf("stringToBytes() error = %v", err)
	}

	want := []byte{0x04, 127, 0, 0, 1, 0x06, 0x0f, 0xa1}
	if !bytes.Equal(got, want) {
		t.Errorf("stringToBytes() = %x, want %x", got, want)
	}
}

// TestStringToBytes_Empty 空字符串（含只有斜杠的形式）映射为空地址
func TestStringToBytes_Empty(t *testing.T) {
	for _, input := range []string{"", "/", "///"} {
		got, err := stringToBytes(input)
		if err != nil {
			t.Errorf("stringToBytes(%q) error = %v", input, err)
		}
		if len(got) != 0 {
			t.Errorf("stringToBytes(%q) = %x, want empty", input, got)
		}
	}
}

// TestBytesToString 测试字节到字符串的解码
func TestBytesToString(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    string
		wantErr error
	}{
		{
			"IPv4 + TCP",
			[]byte{0x04, 127, 0, 0, 1, 0x06, 0x0f, 0xa1},
			"/ip4/127.0.0.1/tcp/4001",
			nil,
		},
		{
			"Empty",
			nil,
			"",
			nil,
		},
		{
			"Unknown protocol code",
			[]byte{0x7f, 0x00},
			"",
			ErrInvalidAddress,
		},
		{
			"Truncated fixed value",
			[]byte{0x04, 127, 0},
			"",
			ErrInvalidAddress,
		},
		{
			"Truncated code",
			[]byte{0x80},
			"",
			ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bytesToString(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("bytesToString() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("bytesToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("bytesToString() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestRoundTrip 测试编解码往返
func TestRoundTrip(t *testing.T) {
	tests := []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip6/::1/tcp/4001",
		"/ip4/192.168.1.1/udp/4001/quic-v1",
		"/ip4/1.2.3.4/tcp/4001/p2p/QmcEPrat8ShnCph8WjkREzt5CPXF2RwhYxYBALDcLC1iV6",
		"/dns/example.com/tcp/443/wss",
		"/dns4/test.local/tcp/8080",
		"/dns6/ipv6.local/tcp/9090",
		"/unix/var/run/sock",
		"/ip4/127.0.0.1/tcp/9090/http",
		"/ip4/1.2.3.4/udp/443/quic-v1/webtransport",
		"/ip6zone/eth0/ip6/fe80::1/tcp/4001",
		"",
	}

	for _, addr := range tests {
		t.Run(addr, func(t *testing.T) {
			b, err := stringToBytes(addr)
			if err != nil {
				t.Fatalf("stringToBytes() error = %v", err)
			}

			s, err := bytesToString(b)
			if err != nil {
				t.Fatalf("bytesToString() error = %v", err)
			}

			if s != addr {
				t.Errorf("RoundTrip: got %v, want %v", s, addr)
			}
		})
	}
}

// TestValidateBytes 测试字节验证
func TestValidateBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{
			"Valid IPv4 + TCP",
			[]byte{0x04, 127, 0, 0, 1, 0x06, 0x0f, 0xa1},
			nil,
		},
		{
			"Empty is valid",
			nil,
			nil,
		},
		{
			"Unknown protocol code",
			[]byte{0x7f, 0x00},
			ErrInvalidAddress,
		},
		{
			"Truncated IPv4",
			[]byte{0x04, 127, 0},
			ErrInvalidAddress,
		},
		{
			// dns 声明 5 字节长度，但只剩 2 字节
			"Length prefix overrun",
			[]byte{0x35, 0x05, 'a', 'b'},
			ErrInvalidAddress,
		},
		{
			// dns 值不允许包含 '/'
			"Invalid stored value",
			[]byte{0x35, 0x03, 'a', '/', 'b'},
			ErrInvalidValue,
		},
		{
			// unix 路径不允许为空
			"Empty unix value",
			append(codeToVarint(P_UNIX), 0x00),
			ErrInvalidValue,
		},
		{
			// 空 garlic 值渲染后无法往返
			"Empty garlic32 value",
			append(codeToVarint(P_GARLIC32), 0x00),
			ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBytes(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("validateBytes() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateBytes() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestSizeForAddr 测试协议数据大小计算
func TestSizeForAddr(t *testing.T) {
	tests := []struct {
		name       string
		proto      Protocol
		input      []byte
		wantPrefix int
		wantData   int
		wantErr    bool
	}{
		{"Fixed ip4", ProtocolWithCode(P_IP4), []byte{127, 0, 0, 1, 0xff}, 0, 4, false},
		{"Fixed tcp", ProtocolWithCode(P_TCP), []byte{0x0f, 0xa1}, 0, 2, false},
		{"Fixed truncated", ProtocolWithCode(P_IP4), []byte{127, 0}, 0, 0, true},
		{"Zero size", ProtocolWithCode(P_QUIC_V1), []byte{0xff}, 0, 0, false},
		{"Varlen", ProtocolWithCode(P_DNS), []byte{0x03, 'a', 'b', 'c'}, 1, 3, false},
		{"Varlen overrun", ProtocolWithCode(P_DNS), []byte{0x09, 'a', 'b'}, 0, 0, true},
		{"Varlen missing prefix", ProtocolWithCode(P_DNS), []byte{}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, data, err := sizeForAddr(tt.proto, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("sizeForAddr() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Errorf("sizeForAddr() error = %v, want %v", err, ErrInvalidAddress)
				}
				return
			}
			if prefix != tt.wantPrefix || data != tt.wantData {
				t.Errorf("sizeForAddr() = (%d, %d), want (%d, %d)", prefix, data, tt.wantPrefix, tt.wantData)
			}
		})
	}
}

// TestStringBytesEquivalence 字符串路径与字节路径构造的地址规范字节一致
func TestStringBytesEquivalence(t *testing.T) {
	tests := []string{
		"/ip4/127.0.0.1/tcp/4001",
		"/ip4/1.2.3.4/tcp/4001/p2p/QmcEPrat8ShnCph8WjkREzt5CPXF2RwhYxYBALDcLC1iV6",
		"/dns/example.com/tcp/443/wss",
	}

	for _, addr := range tests {
		t.Run(addr, func(t *testing.T) {
			b, err := stringToBytes(addr)
			if err != nil {
				t.Fatalf("stringToBytes() error = %v", err)
			}

			ma1, err := NewMultiaddr(addr)
			if err != nil {
				t.Fatalf("NewMultiaddr() error = %v", err)
			}
			ma2, err := NewMultiaddrBytes(b)
			if err != nil {
				t.Fatalf("NewMultiaddrBytes() error = %v", err)
			}

			if !ma1.Equal(ma2) {
				t.Errorf("string path and bytes path disagree: %x vs %x", ma1.Bytes(), ma2.Bytes())
			}
		})
	}
}

func BenchmarkStringToBytes(b *testing.B) {
	addr := "/ip4/127.0.0.1/tcp/4001/p2p/QmcEPrat8ShnCph8WjkREzt5CPXF2RwhYxYBALDcLC1iV6"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = stringToBytes(addr)
	}
}

func BenchmarkBytesToString(b *testing.B) {
	data, _ := stringToBytes("/ip4/127.0.0.1/tcp/4001/p2p/QmcEPrat8ShnCph8WjkREzt5CPXF2RwhYxYBALDcLC1iV6")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bytesToString(data)
	}
}

func BenchmarkRoundTrip(b *testing.B) {
	addr := "/ip4/127.0.0.1/tcp/4001"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		data, _ := stringToBytes(addr)
		_, _ = bytesToString(data)
	}
}
