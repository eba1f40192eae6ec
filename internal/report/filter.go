package report

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"lxoreader/internal/lxob"
)

// PointEnv 过滤表达式可见的变量
type PointEnv struct {
	X     float64 `expr:"x"`
	Y     float64 `expr:"y"`
	Z     float64 `expr:"z"`
	Index int     `expr:"index"`
}

// Filter 编译好的点过滤表达式，例如 `z > 0 && index % 2 == 0`
type Filter struct {
	source  string
	program *vm.Program
}

// NewFilter 编译表达式，表达式必须返回 bool
func NewFilter(source string) (*Filter, error) {
	program, err := expr.Compile(source, expr.Env(PointEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("编译过滤表达式 %q 失败: %w", source, err)
	}
	return &Filter{source: source, program: program}, nil
}

func (f *Filter) String() string {
	return f.source
}

// Match 判断第 index 个点是否满足条件
func (f *Filter) Match(index int, p lxob.Point) (bool, error) {
	out, err := expr.Run(f.program, PointEnv{
		X:     float64(p.X),
		Y:     float64(p.Y),
		Z:     float64(p.Z),
		Index: index,
	})
	if err != nil {
		return false, fmt.Errorf("执行过滤表达式 %q 失败: %w", f.source, err)
	}
	return out.(bool), nil
}

// Apply 保留满足条件的点，结果保留原始序号。f 为 nil 时保留全部。
func (f *Filter) Apply(points []lxob.Point) (PointList, error) {
	if f == nil {
		return NewPointList(points), nil
	}
	list := make(PointList, 0, len(points))
	for i, p := range points {
		ok, err := f.Match(i, p)
		if err != nil {
			return nil, err
		}
		if ok {
			list = append(list, newPointRow(i, p))
		}
	}
	return list, nil
}
