package treasury

import (
	"context"
	"fmt"
	"math/big"

	"github.com/blues/ccl/internal/ethereum"
	"github.com/blues/ccl/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

// Eth 以太坊后端的资金库，通过出款账户的原生转账完成划转
type Eth struct {
	client *ethereum.Client
}

// NewEth 创建以太坊资金库
func NewEth(client *ethereum.Client) *Eth {
	return &Eth{client: client}
}

// Transfer 向目标地址发起原生转账，广播失败即视为划转失败
func (t *Eth) Transfer(ctx context.Context, to string, amount int64) error {
	if !common.IsHexAddress(to) {
		return fmt.Errorf("invalid recipient address: %s", to)
	}
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %d", amount)
	}

	txHash, err := t.client.SendNative(ctx, common.HexToAddress(to), big.NewInt(amount))
	if err != nil {
		return fmt.Errorf("failed to transfer %d to %s: %w", amount, to, err)
	}

	logger.Info("Treasury transfer %d to %s, tx %s", amount, to, txHash.Hex())
	return nil
}
