package multiaddr

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/multierr"
)

// Split 分离传输地址和 P2P 组件
// 输入：/ip4/1.2.3.4/tcp/4001/p2p/12D3KooW...
// 输出：/ip4/1.2.3.4/tcp/4001, 12D3KooW...
func Split(m Multiaddr) (transport Multiaddr, peerID string) {
	if m == nil {
		return nil, ""
	}

	s := m.String()

	idx := strings.Index(s, "/p2p/")
	if idx < 0 {
		// 没有 P2P 组件
		return m, ""
	}

	transportStr := s[:idx]
	if transportStr == "" {
		transport = nil
	} else {
		transport, _ = NewMultiaddr(transportStr)
	}

	// 提取 PeerID（跳过 "/p2p/"）
	peerID = s[idx+5:]
	if nextSlash := strings.Index(peerID, "/"); nextSlash > 0 {
		peerID = peerID[:nextSlash]
	}

	return transport, peerID
}

// Join 合并传输地址和 P2P 组件
func Join(transport Multiaddr, peerID string) Multiaddr {
	if peerID == "" {
		return transport
	}

	p2pAddr, err := NewMultiaddr(fmt.Sprintf("/p2p/%s", peerID))
	if err != nil {
		// 无法创建 P2P 组件时只返回传输地址
		return transport
	}

	if transport == nil {
		return p2pAddr
	}

	return transport.Encapsulate(p2pAddr)
}

// ParseAll 严格解析字符串切片为多地址切片
//
// 聚合所有解析失败后一并返回，而不是在第一个错误处停下。
func ParseAll(strs []string) ([]Multiaddr, error) {
	var errs error
	mas := make([]Multiaddr, 0, len(strs))

	for i, s := range strs {
		ma, err := NewMultiaddr(s)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid address at index %d: %w", i, err))
			continue
		}
		mas = append(mas, ma)
	}

	if errs != nil {
		return nil, errs
	}
	return mas, nil
}

// FilterAddrs 过滤多地址列表
func FilterAddrs(addrs []Multiaddr, filter func(Multiaddr) bool) []Multiaddr {
	result := make([]Multiaddr, 0, len(addrs))
	for _, addr := range addrs {
		if filter(addr) {
			result = append(result, addr)
		}
	}
	return result
}

// UniqueAddrs 去重多地址列表（保持顺序）
func UniqueAddrs(addrs []Multiaddr) []Multiaddr {
	seen := make(map[string]bool)
	result := make([]Multiaddr, 0, len(addrs))

	for _, addr := range addrs {
		s := addr.String()
		if !seen[s] {
			seen[s] = true
			result = append(result, addr)
		}
	}

	return result
}

// HasProtocol 检查多地址是否包含指定协议
func HasProtocol(m Multiaddr, code int) bool {
	if m == nil {
		return false
	}

	for _, p := range m.Protocols() {
		if p.Code == code {
			return true
		}
	}
	return false
}

// IsTCPMultiaddr 检查是否为 TCP 多地址
func IsTCPMultiaddr(m Multiaddr) bool {
	return HasProtocol(m, P_TCP)
}

// IsUDPMultiaddr 检查是否为 UDP 多地址
func IsUDPMultiaddr(m Multiaddr) bool {
	return HasProtocol(m, P_UDP)
}

// IsIP4Multiaddr 检查是否包含 IPv4
func IsIP4Multiaddr(m Multiaddr) bool {
	return HasProtocol(m, P_IP4)
}

// IsIP6Multiaddr 检查是否包含 IPv6
func IsIP6Multiaddr(m Multiaddr) bool {
	return HasProtocol(m, P_IP6)
}

// IsIPMultiaddr 检查是否包含 IP（IPv4 或 IPv6）
func IsIPMultiaddr(m Multiaddr) bool {
	return IsIP4Multiaddr(m) || IsIP6Multiaddr(m)
}

// extractIP 提取多地址中的 IP 组件（无 IP 组件时返回 nil）
func extractIP(m Multiaddr) net.IP {
	if m == nil {
		return nil
	}

	ipStr, err := m.ValueForProtocol(P_IP4)
	if err != nil {
		ipStr, err = m.ValueForProtocol(P_IP6)
		if err != nil {
			return nil
		}
	}
	return net.ParseIP(ipStr)
}

// IsLoopbackAddr 判断多地址是否是回环地址
func IsLoopbackAddr(m Multiaddr) bool {
	ip := extractIP(m)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}

// IsPrivateAddr 判断多地址是否是私网地址
//
// 私网地址范围：
//   - 10.0.0.0/8
//   - 172.16.0.0/12
//   - 192.168.0.0/16
//   - fc00::/7 (IPv6 ULA)
//   - fe80::/10 (IPv6 链路本地)
func IsPrivateAddr(m Multiaddr) bool {
	ip := extractIP(m)
	if ip == nil {
		return false
	}
	return ip.IsPrivate() || ip.IsLinkLocalUnicast()
}

// IsPublicAddr 判断多地址是否是公网地址
//
// 公网地址：非回环、非私网、非链路本地的有效单播地址
func IsPublicAddr(m Multiaddr) bool {
	ip := extractIP(m)
	if ip == nil {
		return false
	}
	return ip.IsGlobalUnicast() && !ip.IsPrivate() && !ip.IsLoopback()
}

// AddrType 返回地址类型描述
//
// 返回值：
//   - "relay" - 中继地址
//   - "dns" - DNS 地址（无法判断 IP 类型）
//   - "loopback" - 回环地址
//   - "private" - 私网地址
//   - "public" - 公网地址
//   - "unknown" - 未知类型
func AddrType(m Multiaddr) string {
	if m == nil {
		return "unknown"
	}

	if HasProtocol(m, P_P2P_CIRCUIT) {
		return "relay"
	}
	if HasProtocol(m, P_DNS) || HasProtocol(m, P_DNS4) || HasProtocol(m, P_DNS6) || HasProtocol(m, P_DNSADDR) {
		return "dns"
	}
	if IsLoopbackAddr(m) {
		return "loopback"
	}
	if IsPrivateAddr(m) {
		return "private"
	}
	if IsPublicAddr(m) {
		return "public"
	}

	return "unknown"
}

// Component 表示多地址的一个组件（协议 + 渲染值）
type Component struct {
	protocol Protocol
	value    string
}

// Protocol 返回组件的协议
func (c Component) Protocol() Protocol {
	return c.protocol
}

// Value 返回组件的值
func (c Component) Value() string {
	return c.value
}

// SplitFirst 分离多地址的第一个组件和剩余部分
func SplitFirst(m Multiaddr) (Component, Multiaddr) {
	if m == nil {
		return Component{}, nil
	}

	b := m.Bytes()
	if len(b) == 0 {
		return Component{}, nil
	}

	code, n, err := readVarintCode(b)
	if err != nil {
		return Component{}, nil
	}

	proto := ProtocolWithCode(code)
	if proto.Code == 0 {
		return Component{}, nil
	}

	prefixLen, dataLen, err := sizeForAddr(proto, b[n:])
	if err != nil {
		return Component{}, nil
	}

	var value string
	if proto.Size != 0 {
		value, err = proto.Transcoder.BytesToString(b[n+prefixLen : n+prefixLen+dataLen])
		if err != nil {
			return Component{}, nil
		}
	}

	comp := Component{protocol: proto, value: value}

	offset := n + prefixLen + dataLen
	var rest Multiaddr
	if offset < len(b) {
		rest, _ = NewMultiaddrBytes(b[offset:])
	}

	return comp, rest
}

// ForEach 遍历多地址中的每个组件
// 如果回调函数返回 false，则停止遍历
func ForEach(m Multiaddr, fn func(Component) bool) {
	current := m
	for current != nil {
		comp, rest := SplitFirst(current)
		if comp.protocol.Code == 0 {
			break
		}

		if !fn(comp) {
			break
		}

		current = rest
	}
}
