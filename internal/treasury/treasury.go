package treasury

import "context"

// Treasury 资金托管划转原语
// 把一笔资金的托管权移交给目标地址，调用本身可能失败，
// 失败时调用方负责回滚已提交的账本状态
type Treasury interface {
	Transfer(ctx context.Context, to string, amount int64) error
}
