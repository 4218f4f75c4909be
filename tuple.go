package multiaddr

import (
	"bytes"
	"fmt"
)

// Tuple 表示组成多地址的原子单元：(协议代码, 原始值字节)
//
// 顺序即语义，重排元组会得到另一个逻辑地址。
type Tuple struct {
	// Code 协议代码
	Code int

	// Value 原始值字节（无数据协议为 nil）
	Value []byte
}

// StringTuple 表示 (协议代码, 渲染后的值)
type StringTuple struct {
	// Code 协议代码
	Code int

	// Value 经 transcoder 渲染的值（端口为十进制文本，无数据协议为空）
	Value string
}

// BytesToTuples 将二进制多地址分解为有序元组序列
//
// 与 bytesToString 走同一条遍历逻辑，但保留原始值字节而非渲染。
// 值字节会被复制，修改返回的元组不影响输入。
func BytesToTuples(b []byte) ([]Tuple, error) {
	var tuples []Tuple

	for len(b) > 0 {
		code, n, err := readVarintCode(b)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read protocol code: %v", ErrInvalidAddress, err)
		}
		b = b[n:]

		proto := ProtocolWithCode(code)
		if proto.Code == 0 {
			return nil, fmt.Errorf("%w: unknown protocol code %d", ErrInvalidAddress, code)
		}

		prefixLen, dataLen, err := sizeForAddr(proto, b)
		if err != nil {
			return nil, err
		}

		var value []byte
		if dataLen > 0 {
			value = make([]byte, dataLen)
			copy(value, b[prefixLen:prefixLen+dataLen])
		}
		b = b[prefixLen+dataLen:]

		tuples = append(tuples, Tuple{Code: code, Value: value})
	}

	return tuples, nil
}

// TuplesToBytes 将元组序列重新编码为规范二进制形式
//
// BytesToTuples 的逆操作：对同一逻辑内容，输出与最初
// stringToBytes/validateBytes 产生的字节完全一致。
func TuplesToBytes(tuples []Tuple) ([]byte, error) {
	var buf bytes.Buffer

	for _, tup := range tuples {
		proto := ProtocolWithCode(tup.Code)
		if proto.Code == 0 {
			return nil, fmt.Errorf("%w: code %d", ErrUnknownProtocol, tup.Code)
		}

		buf.Write(proto.VCode)

		switch {
		case proto.Size == 0:
			if len(tup.Value) != 0 {
				return nil, fmt.Errorf("%w: protocol %s carries no value", ErrInvalidValue, proto.Name)
			}

		case proto.Size == LengthPrefixedVarSize:
			if err := proto.Transcoder.ValidateBytes(tup.Value); err != nil {
				return nil, fmt.Errorf("%w: protocol %s: %v", ErrInvalidValue, proto.Name, err)
			}
			buf.Write(uvarintEncode(uint64(len(tup.Value))))
			buf.Write(tup.Value)

		default:
			if len(tup.Value) != proto.Size/8 {
				return nil, fmt.Errorf("%w: protocol %s value must be %d bytes, got %d",
					ErrInvalidValue, proto.Name, proto.Size/8, len(tup.Value))
			}
			if err := proto.Transcoder.ValidateBytes(tup.Value); err != nil {
				return nil, fmt.Errorf("%w: protocol %s: %v", ErrInvalidValue, proto.Name, err)
			}
			buf.Write(tup.Value)
		}
	}

	return buf.Bytes(), nil
}

// TuplesToStringTuples 将元组映射为 (代码, 渲染值) 序列
//
// 使用与 bytesToString 相同的 transcoder 渲染。
func TuplesToStringTuples(tuples []Tuple) ([]StringTuple, error) {
	out := make([]StringTuple, 0, len(tuples))

	for _, tup := range tuples {
		proto := ProtocolWithCode(tup.Code)
		if proto.Code == 0 {
			return nil, fmt.Errorf("%w: code %d", ErrUnknownProtocol, tup.Code)
		}

		if proto.Size == 0 {
			out = append(out, StringTuple{Code: tup.Code})
			continue
		}

		s, err := proto.Transcoder.BytesToString(tup.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: protocol %s: %v", ErrInvalidValue, proto.Name, err)
		}
		out = append(out, StringTuple{Code: tup.Code, Value: s})
	}

	return out, nil
}
