package multiaddr

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ThinWaistOptions 瘦腰地址的连接选项视图
//
// 瘦腰地址：恰好两个组件，IP 层（ip4/ip6）后接传输端口层（tcp/udp）。
type ThinWaistOptions struct {
	// Family 地址族："ipv4" 或 "ipv6"
	Family string

	// Host IP 地址文本
	Host string

	// Transport 传输协议名："tcp" 或 "udp"
	Transport string

	// Port 端口的十进制文本
	Port string
}

// IsThinWaist 判断是否为瘦腰地址
func IsThinWaist(m Multiaddr) bool {
	if m == nil {
		return false
	}

	protos := m.Protocols()
	if len(protos) != 2 {
		return false
	}
	if protos[0].Code != P_IP4 && protos[0].Code != P_IP6 {
		return false
	}
	return protos[1].Code == P_TCP || protos[1].Code == P_UDP
}

// ToOptions 返回瘦腰地址的连接选项视图
func ToOptions(m Multiaddr) (*ThinWaistOptions, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil multiaddr", ErrInvalidAddress)
	}
	if !IsThinWaist(m) {
		return nil, fmt.Errorf("%w: not a thin waist address: %s", ErrInvalidFormat, m.String())
	}

	st := m.StringTuples()

	family := "ipv4"
	if st[0].Code == P_IP6 {
		family = "ipv6"
	}

	return &ThinWaistOptions{
		Family:    family,
		Host:      st[0].Value,
		Transport: ProtocolWithCode(st[1].Code).Name,
		Port:      st[1].Value,
	}, nil
}

// ToTCPAddr 将多地址转换为 *net.TCPAddr
func (m *multiaddr) ToTCPAddr() (*net.TCPAddr, error) {
	ip, err := ipForMultiaddr(m)
	if err != nil {
		return nil, err
	}

	portStr, err := m.ValueForProtocol(P_TCP)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port: %s", portStr)
	}

	return &net.TCPAddr{IP: ip, Port: port}, nil
}

// ToUDPAddr 将多地址转换为 *net.UDPAddr
func (m *multiaddr) ToUDPAddr() (*net.UDPAddr, error) {
	ip, err := ipForMultiaddr(m)
	if err != nil {
		return nil, err
	}

	portStr, err := m.ValueForProtocol(P_UDP)
	if err != nil {
		return nil, fmt.Errorf("no UDP port in multiaddr")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port: %s", portStr)
	}

	return &net.UDPAddr{IP: ip, Port: port}, nil
}

// ipForMultiaddr 提取 IP 组件（优先 IPv4）
func ipForMultiaddr(m Multiaddr) (net.IP, error) {
	ipStr, err := m.ValueForProtocol(P_IP4)
	if err != nil {
		ipStr, err = m.ValueForProtocol(P_IP6)
		if err != nil {
			return nil, fmt.Errorf("no IP address in multiaddr")
		}
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, fmt.Errorf("invalid IP address: %s", ipStr)
	}
	return ip, nil
}

// ToNetAddr 将瘦腰多地址转换为 net.Addr
func ToNetAddr(m Multiaddr) (net.Addr, error) {
	opts, err := ToOptions(m)
	if err != nil {
		return nil, err
	}

	switch opts.Transport {
	case "tcp":
		return m.ToTCPAddr()
	case "udp":
		return m.ToUDPAddr()
	default:
		return nil, fmt.Errorf("unsupported transport: %s", opts.Transport)
	}
}

// FromTCPAddr 从 *net.TCPAddr 创建多地址
func FromTCPAddr(addr *net.TCPAddr) (Multiaddr, error) {
	if addr == nil {
		return nil, fmt.Errorf("nil TCP address")
	}
	return fromIPAndPort(addr.IP, addr.Port, "tcp")
}

// FromUDPAddr 从 *net.UDPAddr 创建多地址
func FromUDPAddr(addr *net.UDPAddr) (Multiaddr, error) {
	if addr == nil {
		return nil, fmt.Errorf("nil UDP address")
	}
	return fromIPAndPort(addr.IP, addr.Port, "udp")
}

// FromNetAddr 从 net.Addr 创建多地址
func FromNetAddr(addr net.Addr) (Multiaddr, error) {
	if addr == nil {
		return nil, fmt.Errorf("nil address")
	}

	switch a := addr.(type) {
	case *net.TCPAddr:
		return FromTCPAddr(a)
	case *net.UDPAddr:
		return FromUDPAddr(a)
	default:
		return nil, fmt.Errorf("unsupported address type: %T", addr)
	}
}

// fromIPAndPort 由 IP、端口和传输协议名构造瘦腰多地址
func fromIPAndPort(ip net.IP, port int, transport string) (Multiaddr, error) {
	proto := "ip6"
	if ip4 := ip.To4(); ip4 != nil {
		proto = "ip4"
		ip = ip4
	}

	return NewMultiaddr(fmt.Sprintf("/%s/%s/%s/%d", proto, ip.String(), transport, port))
}

// FromHostPort 从 host:port 形式创建多地址
//
// host 可以是 IP 或域名（域名走 dns4）。transport 可以是单一传输
// （如 "tcp"）或复合传输（如 "udp/quic-v1"）。
func FromHostPort(host string, port int, transport string) (Multiaddr, error) {
	if host == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidFormat)
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("%w: invalid port: %d", ErrInvalidValue, port)
	}
	if transport == "" {
		return nil, fmt.Errorf("%w: missing transport", ErrInvalidFormat)
	}

	// 判断网络类型
	var networkType string
	ip := net.ParseIP(host)
	switch {
	case ip == nil:
		networkType = "dns4"
	case ip.To4() != nil:
		networkType = "ip4"
	default:
		networkType = "ip6"
	}

	// 复合传输（如 "udp/quic-v1"）：端口跟在第一段之后
	if idx := strings.Index(transport, "/"); idx >= 0 {
		return NewMultiaddr(fmt.Sprintf("/%s/%s/%s/%d/%s",
			networkType, host, transport[:idx], port, transport[idx+1:]))
	}

	return NewMultiaddr(fmt.Sprintf("/%s/%s/%s/%d", networkType, host, transport, port))
}
