package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/blues/ccl/internal/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client 以太坊客户端，持有出款账户私钥
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainId    *big.Int
}

// Init 连接以太坊节点并加载出款账户
func Init(cfg config.TreasuryConfig) (*Client, error) {
	// 连接以太坊客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 获取链ID
	chainId := big.NewInt(cfg.ChainId)
	if cfg.ChainId == 0 {
		chainId, err = client.ChainID(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to get chain id: %w", err)
		}
	}

	return &Client{
		client:     client,
		privateKey: privateKey,
		chainId:    chainId,
	}, nil
}

// SendNative 从出款账户向目标地址发送原生转账，返回交易哈希
func (c *Client) SendNative(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error) {
	from := c.AccountAddress()

	// 获取nonce
	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get nonce: %w", err)
	}

	// 获取建议gas价格
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to get gas price: %w", err)
	}

	// 构造并签名交易
	tx := types.NewTransaction(nonce, to, amount, 21000, gasPrice, nil)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainId), c.privateKey)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	// 广播交易
	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx.Hash(), nil
}

// AccountAddress 获取出款账户地址
func (c *Client) AccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// CurrentBlockNumber 获取当前区块号
func (c *Client) CurrentBlockNumber(ctx context.Context) (uint64, error) {
	return c.client.BlockNumber(ctx)
}

// Close 关闭连接
func (c *Client) Close() {
	c.client.Close()
}
