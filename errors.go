package multiaddr

import "errors"

// 错误类别
//
// 所有失败均同步返回给调用者，构造是全有或全无的：
// 任一组件失败即整个地址无效，不存在部分有效的地址值。
var (
	// ErrUnknownProtocol 协议名称或代码不在注册表中
	ErrUnknownProtocol = errors.New("unknown protocol")

	// ErrInvalidFormat 字符串语法错误（缺少前导斜杠、值段数量不符）
	ErrInvalidFormat = errors.New("invalid multiaddr format")

	// ErrInvalidValue 值段或存储字节未通过协议特定的解析/渲染
	ErrInvalidValue = errors.New("invalid protocol value")

	// ErrInvalidAddress 二进制结构校验失败（截断、长度前缀越界、未知代码）
	ErrInvalidAddress = errors.New("invalid multiaddr bytes")

	// ErrNotContained 解封装时后缀字符串未出现在目标地址中
	ErrNotContained = errors.New("address not contained")
)
