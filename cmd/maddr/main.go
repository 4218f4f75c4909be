// maddr 是多地址检查工具
//
// 解析命令行给出的多地址（字符串或十六进制字节），打印规范字符串、
// 二进制编码、协议栈和元组视图。
//
// 用法：
//
//	maddr /ip4/127.0.0.1/tcp/4001
//	maddr -bytes 047f000001060fa1
//	maddr -json /ip4/127.0.0.1/tcp/4001/p2p/QmYyQSo1c1Ym7orWxLYvCrM2EmxFTANf8wXmmE7DWjhx5N
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	multiaddr "github.com/dep2p/go-multiaddr"
	"github.com/dep2p/go-multiaddr/pkg/log"
)

var logger = log.Logger("maddr/cmd")

var (
	fromBytes  = flag.Bool("bytes", false, "输入按十六进制字节解析")
	jsonOutput = flag.Bool("json", false, "以 JSON 格式输出")
	verbose    = flag.Bool("verbose", false, "输出 Debug 级别日志")
)

func main() {
	flag.Parse()

	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	if err := run(flag.Args()); err != nil {
		logger.Error("运行失败", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("缺少地址参数（-h 查看用法）")
	}

	for _, arg := range args {
		ma, err := parseArg(arg)
		if err != nil {
			return fmt.Errorf("解析 %q 失败: %w", arg, err)
		}

		if err := printAddr(ma); err != nil {
			return err
		}
	}

	return nil
}

// parseArg 按输入模式解析单个参数
func parseArg(arg string) (multiaddr.Multiaddr, error) {
	if *fromBytes {
		b, err := hex.DecodeString(arg)
		if err != nil {
			return nil, fmt.Errorf("无效的十六进制输入: %w", err)
		}
		return multiaddr.NewMultiaddrBytes(b)
	}
	return multiaddr.NewMultiaddr(arg)
}

// addrReport 是 JSON 输出的结构
type addrReport struct {
	String    string                      `json:"string"`
	Bytes     string                      `json:"bytes"`
	Protocols []string                    `json:"protocols"`
	Tuples    []tupleReport               `json:"tuples"`
	ThinWaist *multiaddr.ThinWaistOptions `json:"thin_waist,omitempty"`
}

type tupleReport struct {
	Code  int    `json:"code"`
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

func printAddr(ma multiaddr.Multiaddr) error {
	logger.Debug("解析成功", "addr", ma.String(), "bytes", len(ma.Bytes()))

	report := addrReport{
		String:    ma.String(),
		Bytes:     hex.EncodeToString(ma.Bytes()),
		Protocols: ma.ProtocolNames(),
	}

	for _, st := range ma.StringTuples() {
		report.Tuples = append(report.Tuples, tupleReport{
			Code:  st.Code,
			Name:  multiaddr.ProtocolWithCode(st.Code).Name,
			Value: st.Value,
		})
	}

	if opts, err := multiaddr.ToOptions(ma); err == nil {
		report.ThinWaist = opts
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("地址:   %s\n", report.String)
	fmt.Printf("字节:   %s (%d bytes)\n", report.Bytes, len(ma.Bytes()))
	fmt.Printf("协议:   %s\n", strings.Join(report.Protocols, " -> "))
	for _, t := range report.Tuples {
		if t.Value == "" {
			fmt.Printf("  [0x%04x] %s\n", t.Code, t.Name)
			continue
		}
		fmt.Printf("  [0x%04x] %s = %s\n", t.Code, t.Name, t.Value)
	}
	if report.ThinWaist != nil {
		fmt.Printf("瘦腰:   %s %s:%s/%s\n",
			report.ThinWaist.Family, report.ThinWaist.Host,
			report.ThinWaist.Port, report.ThinWaist.Transport)
	}
	fmt.Println()

	return nil
}
