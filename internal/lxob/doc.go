// Package lxob 负责解码 IFF "FORM" 容器中子类型为 "LXOB" 的 3D 场景文件 (.lxo)。
//
// 解码只在一块完整读入内存、不可变的字节切片上进行，分为以下几层：
//   - primitive.go: 大端整数、浮点、4 字符标签、以 0 结尾的字符串
//   - header.go: 52 字节的文件头
//   - chunk.go / walker.go: 块头解码、奇数长度补齐、顺序遍历
//   - locate.go: 按标签查找块 (原始字节扫描 或 按块边界遍历)
//   - points.go / payload.go: "PNTS" 点列表以及可扩展的负载解码器注册表
//   - identity.go: 判断是否为 LXOB 格式
//
// 本包中的函数都是纯函数，不持有状态，也不打印日志，可以被多个协程并发调用。
// 所有错误都可以通过 errors.Is 与 errors.go 中的哨兵错误比较。
package lxob
