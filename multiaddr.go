package multiaddr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"strings"
)

// Multiaddr 是自描述的网络地址接口
//
// 实现是不可变值：所有访问器都是对规范字节的纯计算视图，
// 任何操作都返回新值而非就地修改，可跨线程自由共享。
type Multiaddr interface {
	// Bytes 返回二进制表示（不要修改返回的字节，可能是共享的）
	Bytes() []byte

	// String 返回字符串表示
	String() string

	// Equal 判断两个地址是否相等（规范字节逐位比较）
	Equal(Multiaddr) bool

	// Protocols 返回地址包含的协议列表
	Protocols() []Protocol

	// ProtocolCodes 返回地址包含的协议代码列表
	ProtocolCodes() []int

	// ProtocolNames 返回地址包含的协议名称列表
	ProtocolNames() []string

	// Tuples 返回 (代码, 原始值) 元组序列
	Tuples() []Tuple

	// StringTuples 返回 (代码, 渲染值) 元组序列
	StringTuples() []StringTuple

	// Encapsulate 封装另一个地址（other 的元组序列成为后缀）
	Encapsulate(Multiaddr) Multiaddr

	// Decapsulate 解封装：在规范字符串中查找 suffix 的最后一次出现，
	// 返回其之前的前缀重新解析出的地址；未找到时报 ErrNotContained
	Decapsulate(Multiaddr) (Multiaddr, error)

	// ValueForProtocol 获取指定协议代码的值
	ValueForProtocol(code int) (string, error)

	// ToTCPAddr 转换为 TCP 地址
	ToTCPAddr() (*net.TCPAddr, error)

	// ToUDPAddr 转换为 UDP 地址
	ToUDPAddr() (*net.UDPAddr, error)
}

// multiaddr 是 Multiaddr 接口的实现
type multiaddr struct {
	bytes []byte
}

// NewMultiaddr 从字符串创建多地址
//
// 空字符串得到空地址。
func NewMultiaddr(s string) (Multiaddr, error) {
	b, err := stringToBytes(s)
	if err != nil {
		return nil, err
	}
	return &multiaddr{bytes: b}, nil
}

// NewMultiaddrBytes 从字节创建多地址
//
// 完整结构校验后复制一份，外部修改输入不会影响已验证的地址。
func NewMultiaddrBytes(b []byte) (Multiaddr, error) {
	if err := validateBytes(b); err != nil {
		return nil, err
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	return &multiaddr{bytes: buf}, nil
}

// FromMultiaddr 从现有地址实例创建副本
func FromMultiaddr(m Multiaddr) (Multiaddr, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil multiaddr", ErrInvalidAddress)
	}
	return NewMultiaddrBytes(m.Bytes())
}

// Cast 从字节强制创建多地址（不验证）
// 警告：仅用于已知有效的地址
func Cast(b []byte) Multiaddr {
	return &multiaddr{bytes: b}
}

// Bytes 返回二进制表示
func (m *multiaddr) Bytes() []byte {
	return m.bytes
}

// String 返回字符串表示
func (m *multiaddr) String() string {
	s, err := bytesToString(m.bytes)
	if err != nil {
		// 这不应该发生，因为我们在构造时已经验证了
		panic(fmt.Errorf("multiaddr failed to convert to string: %w", err))
	}
	return s
}

// Equal 判断两个地址是否相等
func (m *multiaddr) Equal(other Multiaddr) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(m.bytes, other.Bytes())
}

// Protocols 返回地址包含的协议列表
func (m *multiaddr) Protocols() []Protocol {
	var protocols []Protocol
	b := m.bytes

	for len(b) > 0 {
		code, n, err := readVarintCode(b)
		if err != nil {
			// 构造时已验证，不应该发生
			panic(err)
		}
		b = b[n:]

		proto := ProtocolWithCode(code)
		if proto.Code == 0 {
			panic(fmt.Errorf("unknown protocol code: %d", code))
		}
		protocols = append(protocols, proto)

		// 跳过协议数据
		prefixLen, dataLen, err := sizeForAddr(proto, b)
		if err != nil {
			panic(err)
		}
		b = b[prefixLen+dataLen:]
	}

	return protocols
}

// ProtocolCodes 返回地址包含的协议代码列表
func (m *multiaddr) ProtocolCodes() []int {
	protos := m.Protocols()
	codes := make([]int, len(protos))
	for i, p := range protos {
		codes[i] = p.Code
	}
	return codes
}

// ProtocolNames 返回地址包含的协议名称列表
func (m *multiaddr) ProtocolNames() []string {
	protos := m.Protocols()
	names := make([]string, len(protos))
	for i, p := range protos {
		names[i] = p.Name
	}
	return names
}

// Tuples 返回 (代码, 原始值) 元组序列
func (m *multiaddr) Tuples() []Tuple {
	tuples, err := BytesToTuples(m.bytes)
	if err != nil {
		// 构造时已验证，不应该发生
		panic(err)
	}
	return tuples
}

// StringTuples 返回 (代码, 渲染值) 元组序列
func (m *multiaddr) StringTuples() []StringTuple {
	st, err := TuplesToStringTuples(m.Tuples())
	if err != nil {
		panic(err)
	}
	return st
}

// Encapsulate 封装另一个地址
//
// 结果的规范字符串是两者规范字符串的拼接，经 stringToBytes 重新解析。
func (m *multiaddr) Encapsulate(other Multiaddr) Multiaddr {
	if other == nil {
		return m
	}

	s := m.String() + other.String()
	b, err := stringToBytes(s)
	if err != nil {
		// 两个已验证地址的拼接不应该解析失败
		panic(fmt.Errorf("encapsulate failed to reparse %q: %w", s, err))
	}

	return &multiaddr{bytes: b}
}

// Decapsulate 解封装（按规范字符串截断）
//
// 在 m 的规范字符串中查找 other 规范字符串的最后一次出现，
// 返回其之前的前缀解析出的新地址。这是对渲染字符串的文本操作，
// 不是结构化的元组前缀匹配：当某个变长值的渲染文本恰好包含另一个
// 地址的文本时，截断点可能落在值内部。
func (m *multiaddr) Decapsulate(other Multiaddr) (Multiaddr, error) {
	if other == nil {
		return m, nil
	}

	s := m.String()
	o := other.String()

	idx := strings.LastIndex(s, o)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q not found in %q", ErrNotContained, o, s)
	}

	return NewMultiaddr(s[:idx])
}

// ValueForProtocol 获取指定协议代码的值
func (m *multiaddr) ValueForProtocol(code int) (string, error) {
	proto := ProtocolWithCode(code)
	if proto.Code == 0 {
		return "", fmt.Errorf("%w: code %d", ErrUnknownProtocol, code)
	}

	for _, tup := range m.Tuples() {
		if tup.Code != code {
			continue
		}
		current := ProtocolWithCode(tup.Code)
		if current.Size == 0 {
			// 找到了，但无值
			return "", nil
		}
		return current.Transcoder.BytesToString(tup.Value)
	}

	return "", fmt.Errorf("protocol %s not found in multiaddr", proto.Name)
}

// MarshalBinary 实现 encoding.BinaryMarshaler
func (m *multiaddr) MarshalBinary() ([]byte, error) {
	return m.Bytes(), nil
}

// UnmarshalBinary 实现 encoding.BinaryUnmarshaler
func (m *multiaddr) UnmarshalBinary(data []byte) error {
	ma, err := NewMultiaddrBytes(data)
	if err != nil {
		return err
	}
	*m = *(ma.(*multiaddr))
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (m *multiaddr) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (m *multiaddr) UnmarshalText(data []byte) error {
	ma, err := NewMultiaddr(string(data))
	if err != nil {
		return err
	}
	*m = *(ma.(*multiaddr))
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (m *multiaddr) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 实现 json.Unmarshaler
func (m *multiaddr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	ma, err := NewMultiaddr(s)
	if err != nil {
		return err
	}
	*m = *(ma.(*multiaddr))
	return nil
}
