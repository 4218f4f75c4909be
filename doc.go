// Package multiaddr 提供多地址（Multiaddr）的实现
//
// Multiaddr 是一种自描述、可组合的网络地址格式：同一个地址同时拥有
// 规范的二进制形式和人类可读的斜杠分隔字符串形式，表示有序的协议组件栈。
//
// # 基本用法
//
//	// 从字符串创建多地址
//	ma, err := multiaddr.NewMultiaddr("/ip4/127.0.0.1/tcp/4001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// 获取字符串表示
//	fmt.Println(ma.String()) // /ip4/127.0.0.1/tcp/4001
//
//	// 获取二进制表示（规范存储形式）
//	bytes := ma.Bytes()
//
//	// 封装另一个地址
//	p2p, _ := multiaddr.NewMultiaddr("/p2p/QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N")
//	full := ma.Encapsulate(p2p)
//
//	// 解封装（按规范字符串截断，未包含时报 ErrNotContained）
//	base, err := full.Decapsulate(p2p)
//
// # 元组视图
//
//	// 分解为 (协议代码, 原始值) 元组
//	tuples := ma.Tuples()
//
//	// 渲染后的 (协议代码, 值文本) 元组
//	stringTuples := ma.StringTuples()
//
//	// 元组可重新编码为与原始编码逐字节一致的二进制形式
//	b, err := multiaddr.TuplesToBytes(tuples)
//
// # 地址格式
//
// 字符串格式：
//
//	/ip4/127.0.0.1/tcp/4001
//	/ip6/::1/tcp/8080
//	/ip4/192.168.1.1/udp/4001/quic-v1
//	/ip4/1.2.3.4/tcp/4001/p2p/QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N
//	/dns/example.com/tcp/443/wss
//	/unix/var/run/sock
//
// 二进制格式：
//
//	[varint:protocol_code][varint:length][data_bytes]...
//
// 长度前缀只在变长协议中出现；varint 为 7 位载荷加延续位的
// base-128 编码，且强制最小编码，保证同一逻辑地址的字节形式唯一。
//
// # 错误类别
//
// 所有构造和转换都是全有或全无的，失败以五类哨兵错误报告，可用
// errors.Is 区分：ErrUnknownProtocol、ErrInvalidFormat、ErrInvalidValue、
// ErrInvalidAddress、ErrNotContained。
//
// # 与标准网络类型转换
//
//	// 从 net.TCPAddr 创建
//	tcpAddr := &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4001}
//	ma, err := multiaddr.FromTCPAddr(tcpAddr)
//
//	// 瘦腰地址（恰好 ip4/ip6 + tcp/udp 两个组件）的连接选项视图
//	opts, err := multiaddr.ToOptions(ma)
//	// → {Family: "ipv4", Host: "127.0.0.1", Transport: "tcp", Port: "4001"}
//
// # 并发
//
// 协议注册表在进程启动时构建一次，之后只读；地址值不可变。
// 所有操作都是纯函数，可跨线程自由共享与并发调用，无需加锁。
//
// # 与 multiformats 对齐
//
// 所有协议代码与 multiformats/multicodec 完全对齐：
// https://github.com/multiformats/multicodec/blob/master/table.csv
package multiaddr
