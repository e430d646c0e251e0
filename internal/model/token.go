package model

import "github.com/ethereum/go-ethereum/common"

// Token describes an ERC20 token. Only Decimals takes part in amount conversion.
type Token struct {
	Address     common.Address `json:"address"`
	Decimals    uint8          `json:"decimals"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	LogoURI     *string        `json:"logoUri,omitempty"`
	PriceUSD    *string        `json:"priceUsd,omitempty"`
	TotalSupply *string        `json:"totalSupply,omitempty"`
}
