package multiaddr

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMultiaddr_ToTCPAddr 测试转换为 TCP 地址
func TestMultiaddr_ToTCPAddr(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantIP   string
		wantPort int
		wantErr  bool
	}{
		{
			"IPv4 + TCP",
			"/ip4/127.0.0.1/tcp/4001",
			"127.0.0.1",
			4001,
			false,
		},
		{
			"IPv6 + TCP",
			"/ip6/::1/tcp/8080",
			"::1",
			8080,
			false,
		},
		{
			"No TCP",
			"/ip4/127.0.0.1",
			"",
			0,
			true,
		},
		{
			"UDP instead of TCP",
			"/ip4/127.0.0.1/udp/4001",
			"",
			0,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := NewMultiaddr(tt.addr)
			if err != nil {
				t.Fatalf("NewMultiaddr() error = %v", err)
			}

			tcpAddr, err := ma.ToTCPAddr()
			if (err != nil) != tt.wantErr {
				t.Errorf("ToTCPAddr() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if tcpAddr.IP.String() != tt.wantIP {
					t.Errorf("ToTCPAddr() IP = %v, want %v", tcpAddr.IP.String(), tt.wantIP)
				}
				if tcpAddr.Port != tt.wantPort {
					t.Errorf("ToTCPAddr() Port = %v, want %v", tcpAddr.Port, tt.wantPort)
				}
			}
		})
	}
}

// TestMultiaddr_ToUDPAddr 测试转换为 UDP 地址
func TestMultiaddr_ToUDPAddr(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		wantIP   string
		wantPort int
		wantErr  bool
	}{
		{
			"IPv4 + UDP",
			"/ip4/192.168.1.1/udp/4001",
			"192.168.1.1",
			4001,
			false,
		},
		{
			"IPv6 + UDP",
			"/ip6/::1/udp/9090",
			"::1",
			9090,
			false,
		},
		{
			"TCP instead of UDP",
			"/ip4/127.0.0.1/tcp/4001",
			"",
			0,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := NewMultiaddr(tt.addr)
			if err != nil {
				t.Fatalf("NewMultiaddr() error = %v", err)
			}

			udpAddr, err := ma.ToUDPAddr()
			if (err != nil) != tt.wantErr {
				t.Errorf("ToUDPAddr() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if udpAddr.IP.String() != tt.wantIP {
					t.Errorf("ToUDPAddr() IP = %v, want %v", udpAddr.IP.String(), tt.wantIP)
				}
				if udpAddr.Port != tt.wantPort {
					t.Errorf("ToUDPAddr() Port = %v, want %v", udpAddr.Port, tt.wantPort)
				}
			}
		})
	}
}

// TestIsThinWaist 测试瘦腰地址判定
func TestIsThinWaist(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"/ip4/127.0.0.1/tcp/4001", true},
		{"/ip4/1.2.3.4/udp/443", true},
		{"/ip6/::1/tcp/8080", true},
		{"/ip4/127.0.0.1", false},
		{"/ip4/1.2.3.4/udp/443/quic-v1", false},
		{"/dns/example.com/tcp/443", false},
		{"/tcp/4001", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			ma, err := NewMultiaddr(tt.addr)
			if err != nil {
				t.Fatalf("NewMultiaddr() error = %v", err)
			}
			if got := IsThinWaist(ma); got != tt.want {
				t.Errorf("IsThinWaist(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

// TestToOptions 测试瘦腰地址的连接选项视图
func TestToOptions(t *testing.T) {
	ma, err := NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
	require.NoError(t, err)

	opts, err := ToOptions(ma)
	require.NoError(t, err)
	require.Equal(t, &ThinWaistOptions{
		Family:    "ipv4",
		Host:      "127.0.0.1",
		Transport: "tcp",
		Port:      "4001",
	}, opts)

	ma6, err := NewMultiaddr("/ip6/::1/udp/9090")
	require.NoError(t, err)

	opts, err = ToOptions(ma6)
	require.NoError(t, err)
	require.Equal(t, "ipv6", opts.Family)
	require.Equal(t, "::1", opts.Host)
	require.Equal(t, "udp", opts.Transport)
	require.Equal(t, "9090", opts.Port)
}

// TestToOptions_NotThinWaist 非瘦腰地址报 ErrInvalidFormat
func TestToOptions_NotThinWaist(t *testing.T) {
	ma, err := NewMultiaddr("/ip4/1.2.3.4/udp/443/quic-v1")
	require.NoError(t, err)

	_, err = ToOptions(ma)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

// TestToNetAddr 测试转换为 net.Addr
func TestToNetAddr(t *testing.T) {
	ma, _ := NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
	addr, err := ToNetAddr(ma)
	if err != nil {
		t.Fatalf("ToNetAddr() error = %v", err)
	}
	if _, ok := addr.(*net.TCPAddr); !ok {
		t.Errorf("ToNetAddr() type = %T, want *net.TCPAddr", addr)
	}

	ma, _ = NewMultiaddr("/ip4/127.0.0.1/udp/4001")
	addr, err = ToNetAddr(ma)
	if err != nil {
		t.Fatalf("ToNetAddr() error = %v", err)
	}
	if _, ok := addr.(*net.UDPAddr); !ok {
		t.Errorf("ToNetAddr() type = %T, want *net.UDPAddr", addr)
	}

	ma, _ = NewMultiaddr("/dns/example.com/tcp/443")
	if _, err := ToNetAddr(ma); err == nil {
		t.Error("ToNetAddr() should fail for non thin waist address")
	}
}

// wrappedMultiaddr 是接口的另一种实现，用于验证转换只依赖接口方法
type wrappedMultiaddr struct{ Multiaddr }

// TestToNetAddr_InterfaceOnly ToNetAddr 不依赖具体实现类型
func TestToNetAddr_InterfaceOnly(t *testing.T) {
	ma, err := NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
	require.NoError(t, err)

	addr, err := ToNetAddr(wrappedMultiaddr{ma})
	require.NoError(t, err)
	require.IsType(t, &net.TCPAddr{}, addr)
}

// TestFromTCPAddr 测试从 TCP 地址创建
func TestFromTCPAddr(t *testing.T) {
	tests := []struct {
		name string
		addr *net.TCPAddr
		want string
	}{
		{
			"IPv4",
			&net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001},
			"/ip4/127.0.0.1/tcp/4001",
		},
		{
			"IPv6",
			&net.TCPAddr{IP: net.ParseIP("::1"), Port: 8080},
			"/ip6/::1/tcp/8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := FromTCPAddr(tt.addr)
			if err != nil {
				t.Fatalf("FromTCPAddr() error = %v", err)
			}
			if ma.String() != tt.want {
				t.Errorf("FromTCPAddr() = %v, want %v", ma.String(), tt.want)
			}
		})
	}

	if _, err := FromTCPAddr(nil); err == nil {
		t.Error("FromTCPAddr(nil) should fail")
	}
}

// TestFromUDPAddr 测试从 UDP 地址创建
func TestFromUDPAddr(t *testing.T) {
	ma, err := FromUDPAddr(&net.UDPAddr{IP: net.ParseIP("192.168.1.1"), Port: 4001})
	if err != nil {
		t.Fatalf("FromUDPAddr() error = %v", err)
	}
	if ma.String() != "/ip4/192.168.1.1/udp/4001" {
		t.Errorf("FromUDPAddr() = %v", ma.String())
	}
}

// TestFromNetAddr 测试从 net.Addr 创建
func TestFromNetAddr(t *testing.T) {
	ma, err := FromNetAddr(&net.TCPAddr{IP: net.ParseIP("10.0.0.1"), Port: 80})
	if err != nil {
		t.Fatalf("FromNetAddr() error = %v", err)
	}
	if ma.String() != "/ip4/10.0.0.1/tcp/80" {
		t.Errorf("FromNetAddr() = %v", ma.String())
	}

	if _, err := FromNetAddr(&net.UnixAddr{Name: "/tmp/sock", Net: "unix"}); err == nil {
		t.Error("FromNetAddr() should fail for unsupported type")
	}
	if _, err := FromNetAddr(nil); err == nil {
		t.Error("FromNetAddr(nil) should fail")
	}
}

// TestNetAddrRoundTrip net.Addr 往返一致
func TestNetAddrRoundTrip(t *testing.T) {
	ma, _ := NewMultiaddr("/ip4/127.0.0.1/tcp/4001")

	netAddr, err := ToNetAddr(ma)
	require.NoError(t, err)

	back, err := FromNetAddr(netAddr)
	require.NoError(t, err)
	require.True(t, back.Equal(ma))
}

// TestFromHostPort 测试从 host/port/transport 创建
func TestFromHostPort(t *testing.T) {
	tests := []struct {
		name      string
		host      string
		port      int
		transport string
		want      string
		wantErr   error
	}{
		{
			"IPv4 + TCP",
			"127.0.0.1", 4001, "tcp",
			"/ip4/127.0.0.1/tcp/4001",
			nil,
		},
		{
			"IPv6 + UDP",
			"::1", 9090, "udp",
			"/ip6/::1/udp/9090",
			nil,
		},
		{
			"Hostname falls back to dns4",
			"example.com", 443, "tcp",
			"/dns4/example.com/tcp/443",
			nil,
		},
		{
			"Compound transport",
			"1.2.3.4", 4001, "udp/quic-v1",
			"/ip4/1.2.3.4/udp/4001/quic-v1",
			nil,
		},
		{
			"Empty host",
			"", 80, "tcp",
			"",
			ErrInvalidFormat,
		},
		{
			"Port out of range",
			"127.0.0.1", 70000, "tcp",
			"",
			ErrInvalidValue,
		},
		{
			"Missing transport",
			"127.0.0.1", 80, "",
			"",
			ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ma, err := FromHostPort(tt.host, tt.port, tt.transport)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FromHostPort() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromHostPort() error = %v", err)
			}
			if ma.String() != tt.want {
				t.Errorf("FromHostPort() = %v, want %v", ma.String(), tt.want)
			}
		})
	}
}

func BenchmarkFromTCPAddr(b *testing.B) {
	addr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = FromTCPAddr(addr)
	}
}

func BenchmarkToTCPAddr(b *testing.B) {
	ma, _ := NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ma.ToTCPAddr()
	}
}
