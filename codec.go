package multiaddr

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

// stringToBytes 将多地址字符串转换为二进制格式
//
// 空字符串（以及只含斜杠的字符串）映射为空地址。
func stringToBytes(s string) ([]byte, error) {
	// 去除尾部斜杠
	s = strings.TrimRight(s, "/")

	if len(s) == 0 {
		// 空地址
		return nil, nil
	}

	if !strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("%w: must begin with /", ErrInvalidFormat)
	}

	var buf bytes.Buffer

	// 跳过第一个空元素
	parts := strings.Split(s, "/")[1:]

	// 解析每个协议及其值
	for len(parts) > 0 {
		name := parts[0]
		proto := ProtocolWithName(name)
		if proto.Code == 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProtocol, name)
		}

		// 写入协议代码（varint）
		buf.Write(proto.VCode)
		parts = parts[1:]

		// 如果协议无数据，继续下一个
		if proto.Size == 0 {
			continue
		}

		// 协议需要值
		if len(parts) < 1 {
			return nil, fmt.Errorf("%w: protocol %s requires a value", ErrInvalidFormat, name)
		}

		// 如果是路径协议，消费剩余所有部分
		if proto.Path {
			parts = []string{"/" + strings.Join(parts, "/")}
		}

		// 使用 transcoder 转换值
		value := parts[0]
		valueBytes, err := proto.Transcoder.StringToBytes(value)
		if err != nil {
			return nil, fmt.Errorf("%w: protocol %s: %v", ErrInvalidValue, name, err)
		}

		// 如果是变长协议，写入长度前缀
		if proto.Size == LengthPrefixedVarSize {
			buf.Write(uvarintEncode(uint64(len(valueBytes))))
		}

		// 写入值
		buf.Write(valueBytes)
		parts = parts[1:]
	}

	return buf.Bytes(), nil
}

// bytesToString 将二进制格式的多地址转换为字符串
//
// 空字节序列渲染为空字符串。
func bytesToString(b []byte) (string, error) {
	var sb strings.Builder

	for len(b) > 0 {
		// 读取协议代码
		code, n, err := readVarintCode(b)
		if err != nil {
			return "", fmt.Errorf("%w: failed to read protocol code: %v", ErrInvalidAddress, err)
		}
		b = b[n:]

		// 获取协议
		proto := ProtocolWithCode(code)
		if proto.Code == 0 {
			return "", fmt.Errorf("%w: unknown protocol code %d", ErrInvalidAddress, code)
		}

		// 写入协议名称
		sb.WriteString("/")
		sb.WriteString(proto.Name)

		// 如果协议无数据，继续
		if proto.Size == 0 {
			continue
		}

		// 确定数据大小
		prefixLen, dataLen, err := sizeForAddr(proto, b)
		if err != nil {
			return "", err
		}

		// 读取数据
		valueBytes := b[prefixLen : prefixLen+dataLen]
		b = b[prefixLen+dataLen:]

		// 转换为字符串
		valueStr, err := proto.Transcoder.BytesToString(valueBytes)
		if err != nil {
			return "", fmt.Errorf("%w: protocol %s: %v", ErrInvalidValue, proto.Name, err)
		}

		// 路径值自带前导斜杠时不再补分隔符
		if !(proto.Path && len(valueStr) > 0 && valueStr[0] == '/') {
			sb.WriteString("/")
		}
		sb.WriteString(valueStr)
	}

	return sb.String(), nil
}

// validateBytes 验证二进制多地址的格式
//
// 与解码走同一条遍历逻辑：每个代码必须可解析，
// 每个值的声明/隐含长度必须落在剩余字节内。空输入有效。
func validateBytes(b []byte) error {
	for len(b) > 0 {
		// 读取协议代码
		code, n, err := readVarintCode(b)
		if err != nil {
			return fmt.Errorf("%w: invalid protocol code: %v", ErrInvalidAddress, err)
		}
		b = b[n:]

		// 获取协议
		proto := ProtocolWithCode(code)
		if proto.Code == 0 {
			return fmt.Errorf("%w: unknown protocol code %d", ErrInvalidAddress, code)
		}

		// 如果协议无数据，继续
		if proto.Size == 0 {
			continue
		}

		// 确定数据大小
		prefixLen, dataLen, err := sizeForAddr(proto, b)
		if err != nil {
			return err
		}

		// 验证数据
		valueBytes := b[prefixLen : prefixLen+dataLen]
		if err := proto.Transcoder.ValidateBytes(valueBytes); err != nil {
			return fmt.Errorf("%w: protocol %s: %v", ErrInvalidValue, proto.Name, err)
		}

		b = b[prefixLen+dataLen:]
	}

	return nil
}

// sizeForAddr 计算协议数据部分的大小
// 返回：(length_prefix_bytes, data_bytes, error)
//
// 固定大小协议直接返回位宽对应的字节数；变长协议先解码 varint 长度前缀。
// 声明长度超出剩余字节时报 ErrInvalidAddress，调用方无需再做边界检查。
func sizeForAddr(proto Protocol, b []byte) (int, int, error) {
	switch {
	case proto.Size == 0:
		return 0, 0, nil

	case proto.Size == LengthPrefixedVarSize:
		// 读取长度前缀
		length, n, err := uvarintDecode(b)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: bad length prefix for protocol %s: %v", ErrInvalidAddress, proto.Name, err)
		}
		if length > math.MaxInt32 || int(length) > len(b)-n {
			return 0, 0, fmt.Errorf("%w: length prefix overrun for protocol %s: need %d, have %d",
				ErrInvalidAddress, proto.Name, length, len(b)-n)
		}
		return n, int(length), nil

	default:
		// 固定大小（位转字节）
		size := proto.Size / 8
		if len(b) < size {
			return 0, 0, fmt.Errorf("%w: insufficient data for protocol %s: need %d, have %d",
				ErrInvalidAddress, proto.Name, size, len(b))
		}
		return 0, size, nil
	}
}
