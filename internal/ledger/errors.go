package ledger

import (
	"errors"
	"fmt"
)

// Kind 账本错误类别
type Kind int

const (
	KindNotFound        Kind = iota + 1 // 活动不存在
	KindUnauthorized                    // 调用者无权限
	KindInvalidArgument                 // 参数非法
	KindInvalidState                    // 当前生命周期不允许该操作
	KindTransferFailed                  // 资金划转原语失败
)

// Error 账本错误，携带类别和可读原因
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf 返回错误的账本类别，非账本错误返回0
func KindOf(err error) Kind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return 0
}

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func invalidArgument(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func transferFailed(format string, args ...interface{}) error {
	return &Error{Kind: KindTransferFailed, Message: fmt.Sprintf(format, args...)}
}
