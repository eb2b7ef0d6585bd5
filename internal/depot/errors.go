package depot

import (
	"errors"
	"fmt"
)

// RejectedError 命令被拒绝：引擎状态未发生任何变化。
// 与普通 error 区分开，调用方（和测试）可以分辨
// “因为非法而没发生” 和 “因为 bug 而没发生”。
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return e.Reason
}

// Rejectf 构造 RejectedError。
func Rejectf(format string, args ...any) *RejectedError {
	return &RejectedError{Reason: fmt.Sprintf(format, args...)}
}

// IsRejected 判断 err 是否为命令拒绝。
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}
