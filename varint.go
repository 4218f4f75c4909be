package multiaddr

import (
	"math"

	"github.com/multiformats/go-varint"
)

// codeToVarint 将协议代码转换为 varint 编码的字节
func codeToVarint(code int) []byte {
	if code < 0 || code > math.MaxInt32 {
		panic("invalid protocol code")
	}
	return varint.ToUvarint(uint64(code))
}

// readVarintCode 从字节流中读取 varint 编码的协议代码
// 返回：(code, bytes_read, error)
func readVarintCode(buf []byte) (int, int, error) {
	code, n, err := varint.FromUvarint(buf)
	if err != nil {
		return 0, 0, err
	}
	if code > math.MaxInt32 {
		// 只允许 32 位代码
		return 0, 0, varint.ErrOverflow
	}
	return int(code), n, nil
}

// uvarintEncode 编码无符号 varint
// 每字节携带 7 位有效载荷加 1 位延续位，强制最小编码
func uvarintEncode(x uint64) []byte {
	return varint.ToUvarint(x)
}

// uvarintDecode 解码无符号 varint
// 返回：(value, bytes_read, error)；非最小编码会被拒绝
func uvarintDecode(buf []byte) (uint64, int, error) {
	return varint.FromUvarint(buf)
}
