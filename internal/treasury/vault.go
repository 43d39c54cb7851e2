package treasury

import (
	"context"
	"errors"
	"sync"
)

// Vault 进程内资金库，按地址记账
// 用于本地开发和测试环境，生产环境使用以太坊后端
type Vault struct {
	mu       sync.Mutex
	balances map[string]int64
}

// NewVault 创建进程内资金库
func NewVault() *Vault {
	return &Vault{balances: make(map[string]int64)}
}

// Transfer 把金额记入目标地址
func (v *Vault) Transfer(ctx context.Context, to string, amount int64) error {
	if to == "" {
		return errors.New("transfer recipient is empty")
	}
	if amount <= 0 {
		return errors.New("transfer amount must be positive")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	v.balances[to] += amount
	v.mu.Unlock()
	return nil
}

// Balance 查询地址已收到的金额
func (v *Vault) Balance(addr string) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.balances[addr]
}
